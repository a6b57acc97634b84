package store

import "fmt"

// Stats holds aggregate counts for the stored table and run log.
type Stats struct {
	Users   int
	Movies  int
	Ratings int
	Runs    int
}

// GetStats returns aggregate statistics for the store.
func (d *DB) GetStats() (*Stats, error) {
	var stats Stats

	counts := []struct {
		query string
		dest  *int
		what  string
	}{
		{`SELECT COUNT(*) FROM users`, &stats.Users, "users"},
		{`SELECT COUNT(*) FROM movies`, &stats.Movies, "movies"},
		{`SELECT COUNT(*) FROM ratings`, &stats.Ratings, "ratings"},
		{`SELECT COUNT(*) FROM recommendation_runs`, &stats.Runs, "runs"},
	}

	for _, c := range counts {
		if err := d.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.what, err)
		}
	}

	return &stats, nil
}
