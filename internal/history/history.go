// Package history records completed compliance runs in a local SQLite
// database. It stores results, not API responses: re-running a check always
// goes back to the API.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/codehealth/glcheck/internal/compliance"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	input        TEXT NOT NULL,
	project_id   INTEGER NOT NULL,
	project_name TEXT NOT NULL,
	score        INTEGER NOT NULL,
	total        INTEGER NOT NULL,
	status_json  TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded compliance check.
type Run struct {
	ID          string
	Input       string
	ProjectID   int
	ProjectName string
	Score       int
	Total       int
	Status      compliance.Status
	CreatedAt   time.Time
}

// Store is an append-only run log backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// initializes the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun appends a completed run. The run ID is generated here and
// returned on the stored copy.
func (s *Store) RecordRun(ctx context.Context, input string, projectID int, projectName string, status compliance.Status) (*Run, error) {
	statusJSON, err := json.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}

	run := &Run{
		ID:          uuid.New().String(),
		Input:       input,
		ProjectID:   projectID,
		ProjectName: projectName,
		Score:       status.Score(),
		Total:       status.Total(),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input, project_id, project_name, score, total, status_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.ProjectID, run.ProjectName,
		run.Score, run.Total, string(statusJSON),
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input, project_id, project_name, score, total, status_json, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var statusJSON, createdAt string
		if err := rows.Scan(&run.ID, &run.Input, &run.ProjectID, &run.ProjectName,
			&run.Score, &run.Total, &statusJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(statusJSON), &run.Status); err != nil {
			return nil, fmt.Errorf("decode status for run %s: %w", run.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
