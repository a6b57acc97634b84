package store

import (
	"fmt"

	"github.com/jacklau/movierec/internal/ratings"
)

// ReplaceTable overwrites the stored movies, users and ratings with t in a
// single transaction. Only observed (non-zero) ratings are stored. If
// progress is non-nil it is called with the number of users written so far.
func (d *DB) ReplaceTable(t *ratings.Table, progress func(users int)) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM ratings`, `DELETE FROM users`, `DELETE FROM movies`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing table: %w", err)
		}
	}

	for i, name := range t.Movies() {
		if _, err := tx.Exec(`INSERT INTO movies (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("inserting movie %q: %w", name, err)
		}
	}

	insertRating, err := tx.Prepare(`INSERT INTO ratings (user_pos, movie_pos, rating) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing rating insert: %w", err)
	}
	defer insertRating.Close()

	for u, name := range t.Users() {
		if _, err := tx.Exec(`INSERT INTO users (position, name) VALUES (?, ?)`, u, name); err != nil {
			return fmt.Errorf("inserting user %q: %w", name, err)
		}
		for m, v := range t.Row(u) {
			if v == 0 {
				continue
			}
			if _, err := insertRating.Exec(u, m, v); err != nil {
				return fmt.Errorf("inserting rating %s/%s: %w", name, t.MovieName(m), err)
			}
		}
		if progress != nil {
			progress(u + 1)
		}
	}

	return tx.Commit()
}

// LoadTable rebuilds the stored ratings table, in stored movie and user order.
func (d *DB) LoadTable() (*ratings.Table, error) {
	movies, err := d.names(`SELECT name FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading movies: %w", err)
	}
	users, err := d.names(`SELECT name FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	cells := make([][]int, len(users))
	for i := range cells {
		cells[i] = make([]int, len(movies))
	}

	rows, err := d.db.Query(`SELECT user_pos, movie_pos, rating FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("loading ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u, m, v int
		if err := rows.Scan(&u, &m, &v); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		if u < 0 || u >= len(users) || m < 0 || m >= len(movies) {
			return nil, fmt.Errorf("rating (%d, %d) out of range", u, m)
		}
		cells[u][m] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ratings: %w", err)
	}

	return ratings.New(movies, users, cells), nil
}

func (d *DB) names(query string) ([]string, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
