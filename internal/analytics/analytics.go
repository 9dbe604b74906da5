// Package analytics records visits to shared portfolio pages without storing
// raw IP addresses.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the visitor log for the lifetime of the process only.
const MemoryDSN = "file:analytics?mode=memory&cache=shared"

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	RecentVisitors   []Visit `json:"recent_visitors"`
}

// Tracker owns the visitor table.
type Tracker struct {
	db     *sql.DB
	salt   string
	now    func() time.Time
	logger *slog.Logger
}

// Open connects to dsn and makes sure the schema exists.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Tracker, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening analytics db")
	}
	db.SetMaxOpenConns(1)

	t := &Tracker{db: db, salt: randomHex(32), now: time.Now, logger: logger}
	if err := t.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("visitor tracking enabled with hashed IP addresses")
	return t, nil
}

func (t *Tracker) Close() error {
	return t.db.Close()
}

func (t *Tracker) migrate(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		visited_at INTEGER NOT NULL
	)`)
	if err != nil {
		return errors.Wrap(err, "creating visitors table")
	}
	_, err = t.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_visitors_visited_at ON visitors(visited_at)`)
	return errors.Wrap(err, "creating visitors index")
}

// HashIP is stable per IP for the lifetime of the tracker.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (t *Tracker) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		t.HashIP(ip), userAgent, path, t.now().UnixMilli())
	return errors.Wrap(err, "recording visitor")
}

// Cleanup deletes visits older than retention.
func (t *Tracker) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := t.now().Add(-retention).UnixMilli()
	res, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "cleaning up visitors")
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		t.logger.Info("privacy cleanup removed old visitor records", "count", n)
	}
	return n, nil
}

func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{RecentVisitors: []Visit{}}
	now := t.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()
	week := now.Add(-7 * 24 * time.Hour).UnixMilli()

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{week}},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, errors.Wrap(err, "counting visitors")
		}
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT 50`)
	if err != nil {
		return nil, errors.Wrap(err, "listing visitors")
	}
	defer rows.Close()

	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			continue
		}
		v.Timestamp = time.UnixMilli(at)
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	return stats, rows.Err()
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("analytics: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
