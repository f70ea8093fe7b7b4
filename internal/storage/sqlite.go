// Package storage provides SQLite-based persistence for engine sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how timestamps are stored. SQLite has no native time type.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the session log.
type Store struct {
	db *sql.DB
}

// Session is one finished engine run.
type Session struct {
	ID        int64
	DemoID    string
	Sink      string // "terminal", "fbdev" or "record"
	FrameRate int    // Target frames per second
	Frames    uint64
	Overruns  uint64
	AvgFrame  time.Duration
	MaxFrame  time.Duration
	Wall      time.Duration
	Error     string // Empty for a clean stop
	StartedAt time.Time
}

// FPS returns the achieved frame rate.
func (s Session) FPS() float64 {
	if s.Wall <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Wall.Seconds()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			demo_id TEXT NOT NULL,
			sink TEXT NOT NULL,
			frame_rate INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			overruns INTEGER NOT NULL DEFAULT 0,
			avg_frame_ns INTEGER NOT NULL DEFAULT 0,
			max_frame_ns INTEGER NOT NULL DEFAULT 0,
			wall_ns INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_demo_id ON sessions(demo_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.DemoID == "" {
		return 0, errors.New("storage: session without demo id")
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (demo_id, sink, frame_rate, frames, overruns, avg_frame_ns, max_frame_ns, wall_ns, error, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.DemoID, sess.Sink, sess.FrameRate,
		int64(sess.Frames), int64(sess.Overruns),
		int64(sess.AvgFrame), int64(sess.MaxFrame), int64(sess.Wall),
		sess.Error, sess.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the latest sessions, newest first.
// An empty demoID selects every demo.
func (s *Store) RecentSessions(demoID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, demo_id, sink, frame_rate, frames, overruns, avg_frame_ns, max_frame_ns, wall_ns, error, started_at
		 FROM sessions
		 WHERE ? = '' OR demo_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		demoID, demoID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess                  Session
			frames, overruns      int64
			avg, maxFrame, wallNS int64
			startedAt             string
		)
		if err := rows.Scan(&sess.ID, &sess.DemoID, &sess.Sink, &sess.FrameRate,
			&frames, &overruns, &avg, &maxFrame, &wallNS, &sess.Error, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Frames = uint64(frames)
		sess.Overruns = uint64(overruns)
		sess.AvgFrame = time.Duration(avg)
		sess.MaxFrame = time.Duration(maxFrame)
		sess.Wall = time.Duration(wallNS)
		sess.StartedAt = parseTime(startedAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes all sessions for the given demo.
func (s *Store) ClearSessions(demoID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE demo_id = ?", demoID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// DemoStats contains aggregated statistics for a demo.
type DemoStats struct {
	DemoID      string
	Runs        int
	TotalFrames int64
	Overruns    int64
	AvgFPS      float64 // Total frames over total wall time
	Failures    int     // Runs that ended with an error
	LastPlayed  time.Time
}

const statsColumns = `COALESCE(MAX(demo_id), ''), COUNT(*), COALESCE(SUM(frames), 0), COALESCE(SUM(overruns), 0),
	COALESCE(SUM(wall_ns), 0), COALESCE(SUM(error != ''), 0), COALESCE(MAX(started_at), '')`

func scanStats(scan func(dest ...any) error) (*DemoStats, error) {
	var (
		st        DemoStats
		wallNS    int64
		lastStart string
	)
	if err := scan(&st.DemoID, &st.Runs, &st.TotalFrames, &st.Overruns, &wallNS, &st.Failures, &lastStart); err != nil {
		return nil, err
	}
	if wallNS > 0 {
		st.AvgFPS = float64(st.TotalFrames) / time.Duration(wallNS).Seconds()
	}
	st.LastPlayed = parseTime(lastStart)
	return &st, nil
}

// GetDemoStats retrieves aggregated statistics for a specific demo.
// A demo that was never run yields zero counts.
func (s *Store) GetDemoStats(demoID string) (*DemoStats, error) {
	row := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM sessions WHERE demo_id = ?`,
		demoID,
	)
	st, err := scanStats(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get demo stats: %w", err)
	}
	// Without matching rows the aggregate still returns one row.
	st.DemoID = demoID
	return st, nil
}

// GetAllDemoStats retrieves statistics for every demo that has been run.
func (s *Store) GetAllDemoStats() (map[string]*DemoStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM sessions GROUP BY demo_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all demo stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DemoStats)
	for rows.Next() {
		st, err := scanStats(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.DemoID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func parseTime(v string) time.Time {
	t, err := time.ParseInLocation(timeLayout, v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
