// Package store keeps a history of planning runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history
type Store struct {
	db *sql.DB
}

// Run is one recorded planning run
type Run struct {
	ID          string        `json:"id"`
	Scenario    string        `json:"scenario"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	AgentRadius int           `json:"agentRadius"`
	Obstacles   int           `json:"obstacles"`
	StartX      int           `json:"startX"`
	StartY      int           `json:"startY"`
	GoalX       int           `json:"goalX"`
	GoalY       int           `json:"goalY"`
	Found       bool          `json:"found"`
	PathLength  int           `json:"pathLength"`
	Waypoints   int           `json:"waypoints"`
	Expanded    int           `json:"expanded"`
	Elapsed     time.Duration `json:"elapsed"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

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

// migrate creates the database schema if it doesn't exist
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			agent_radius INTEGER NOT NULL,
			obstacles INTEGER NOT NULL DEFAULT 0,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			goal_x INTEGER NOT NULL,
			goal_y INTEGER NOT NULL,
			found INTEGER NOT NULL,
			path_length INTEGER NOT NULL DEFAULT 0,
			waypoints INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			elapsed_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a run. CreatedAt defaults to now.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, width, height, agent_radius, obstacles,
			start_x, start_y, goal_x, goal_y, found, path_length, waypoints,
			expanded, elapsed_us, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Scenario, r.Width, r.Height, r.AgentRadius, r.Obstacles,
		r.StartX, r.StartY, r.GoalX, r.GoalY, r.Found, r.PathLength, r.Waypoints,
		r.Expanded, r.Elapsed.Microseconds(), r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: save run %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, width, height, agent_radius, obstacles,
			start_x, start_y, goal_x, goal_y, found, path_length, waypoints,
			expanded, elapsed_us, created_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedUS int64
		if err := rows.Scan(
			&r.ID, &r.Scenario, &r.Width, &r.Height, &r.AgentRadius, &r.Obstacles,
			&r.StartX, &r.StartY, &r.GoalX, &r.GoalY, &r.Found, &r.PathLength, &r.Waypoints,
			&r.Expanded, &elapsedUS, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		r.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats summarizes the recorded runs of one scenario
type Stats struct {
	Scenario    string  `json:"scenario"`
	Runs        int     `json:"runs"`
	Found       int     `json:"found"`
	AvgExpanded float64 `json:"avgExpanded"`
}

// ScenarioStats returns per-scenario totals ordered by scenario name
func (s *Store) ScenarioStats(ctx context.Context) ([]Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario, COUNT(*), SUM(found), AVG(expanded)
		FROM runs
		GROUP BY scenario
		ORDER BY scenario`)
	if err != nil {
		return nil, fmt.Errorf("storage: query stats: %w", err)
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.Found, &st.AvgExpanded); err != nil {
			return nil, fmt.Errorf("storage: scan stats: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
