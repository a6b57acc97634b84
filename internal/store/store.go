package store

import "github.com/jacklau/movierec/internal/ratings"

// Store defines the storage operations used by the CLI.
// It is satisfied by *DB and can be replaced with a mock for testing.
type Store interface {
	// ReplaceTable overwrites the stored ratings table.
	ReplaceTable(t *ratings.Table, progress func(users int)) error

	// LoadTable rebuilds the stored ratings table.
	LoadTable() (*ratings.Table, error)

	// LogRecommendation records a recommendation run.
	LogRecommendation(run *Run) error

	// ListRuns returns the most recent recommendation runs.
	ListRuns(limit int) ([]Run, error)
}

// Compile-time check that *DB satisfies the Store interface.
var _ Store = (*DB)(nil)
