package portfolio

import (
	"sync"
	"time"
)

// IDGenerator hands out record identifiers. Implementations must be safe for
// concurrent use.
type IDGenerator interface {
	Next() int64
}

// ClockIDs issues millisecond timestamps, bumped past the previous value when
// two ids are requested within the same millisecond.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Sequence is a plain counter, handy in tests.
type Sequence struct {
	mu sync.Mutex
	n  int64
}

func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}
