// Package visits is the site's privacy-conscious page view log. Raw IPs are
// never stored: each is salted and hashed, and records expire after a year.
package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long visit records are kept
const Retention = 365 * 24 * time.Hour

// timestamps are stored as sortable UTC text so range filters are plain
// string comparisons
const tsLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);`

// skipPrefixes are never counted as page views
var skipPrefixes = []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/healthz"}

// Visit is one recorded page view
type Visit struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat counts views of one path
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarises traffic for the admin dashboard
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopPaths         []PathStat `json:"top_paths"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// Store records and summarises visits in sqlite
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (creating if needed) the sqlite database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visits db: %w", err)
	}
	// one writer; background inserts would otherwise hit SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visitors table: %w", err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, salt: salt, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated hash of ip, stable for the life of the store
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// ShouldTrack reports whether a request for path counts as a page view.
// Static files, admin pages and clients sending DNT: 1 are skipped.
func ShouldTrack(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Record stores one page view
func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().UTC().Format(tsLayout))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Prune deletes visits older than Retention and returns how many went
func (s *Store) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-Retention).Format(tsLayout)
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// Stats gathers the dashboard summary
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{TopPaths: []PathStat{}, RecentVisitors: []Visit{}}
	var err error

	if stats.TotalVisitors, err = s.count(ctx, `SELECT COUNT(*) FROM visitors`); err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}
	if stats.UniqueVisitors, err = s.count(ctx, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`); err != nil {
		return nil, fmt.Errorf("count unique visitors: %w", err)
	}
	if stats.VisitorsToday, err = s.count(ctx, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, startOfDay.Format(tsLayout)); err != nil {
		return nil, fmt.Errorf("count today's visits: %w", err)
	}
	if stats.VisitorsThisWeek, err = s.count(ctx, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, weekAgo.Format(tsLayout)); err != nil {
		return nil, fmt.Errorf("count this week's visits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	for rows.Next() {
		var ps PathStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, ps)
	}
	rows.Close()

	recent, err := s.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

// Recent returns the latest visits, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	visits := []Visit{}
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		if v.Timestamp, err = time.Parse(tsLayout, ts); err != nil {
			return nil, fmt.Errorf("parse visit timestamp %q: %w", ts, err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
