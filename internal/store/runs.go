package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jacklau/movierec/internal/recommend"
)

// Run is a logged recommendation request and its ranked result.
type Run struct {
	ID        int64
	User      string
	N         int
	Top       []recommend.Ranked
	CreatedAt time.Time
}

// LogRecommendation inserts a new recommendation run. A zero CreatedAt is
// set to the current time.
func (d *DB) LogRecommendation(run *Run) error {
	resultsJSON, err := json.Marshal(run.Top)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	result, err := d.db.Exec(
		`INSERT INTO recommendation_runs (user_name, top_n, results, created_at) VALUES (?, ?, ?, ?)`,
		run.User, run.N, string(resultsJSON), run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("logging recommendation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting run id: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns up to limit recommendation runs, newest first.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := d.db.Query(
		`SELECT id, user_name, top_n, results, created_at FROM recommendation_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var r Run
	var results, createdAt string

	if err := rows.Scan(&r.ID, &r.User, &r.N, &results, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &r.Top); err != nil {
		return nil, fmt.Errorf("unmarshaling results for run %d: %w", r.ID, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &r, nil
}
