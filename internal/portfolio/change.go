package portfolio

import "time"

type Entity string

const (
	EntityProject     Entity = "project"
	EntitySkill       Entity = "skill"
	EntityAchievement Entity = "achievement"
	EntityProfile     Entity = "profile"
	EntityTemplate    Entity = "template"
)

type Op string

const (
	OpAdded   Op = "added"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change tells subscribers which collection to re-read.
type Change struct {
	Entity Entity    `json:"entity"`
	Op     Op        `json:"op"`
	Bucket Bucket    `json:"bucket,omitempty"`
	ID     int64     `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// Type names the change for event streams, e.g. "project.added".
func (c Change) Type() string {
	return string(c.Entity) + "." + string(c.Op)
}
