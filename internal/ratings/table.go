package ratings

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when a user name is not present in a Table.
var ErrUserNotFound = errors.New("user not found")

// Table is an immutable users × movies rating matrix.
// A cell value of 0 means the user has not rated the movie.
type Table struct {
	movies []string
	users  []string
	cells  [][]int
}

// New builds a Table from movie names, user names and one row of ratings per
// user. Every row is normalized to len(movies) cells: short rows are padded
// with 0 and long rows are truncated. Users without a row get an all-zero row.
// The inputs are copied.
func New(movies, users []string, rows [][]int) *Table {
	t := &Table{
		movies: append([]string(nil), movies...),
		users:  append([]string(nil), users...),
		cells:  make([][]int, len(users)),
	}
	for i := range users {
		row := make([]int, len(movies))
		if i < len(rows) {
			copy(row, rows[i])
		}
		t.cells[i] = row
	}
	return t
}

// NumUsers returns the number of users (rows).
func (t *Table) NumUsers() int { return len(t.users) }

// NumMovies returns the number of movies (columns).
func (t *Table) NumMovies() int { return len(t.movies) }

// Get returns the rating of user for movie, 0 if unrated.
func (t *Table) Get(user, movie int) int {
	return t.cells[user][movie]
}

// IsRated reports whether user has an observed rating for movie.
func (t *Table) IsRated(user, movie int) bool {
	return t.cells[user][movie] != 0
}

// Row returns the ratings of a user. The returned slice must not be modified.
func (t *Table) Row(user int) []int {
	return t.cells[user]
}

// UserName returns the name of the user at index i.
func (t *Table) UserName(i int) string { return t.users[i] }

// MovieName returns the name of the movie at index i.
func (t *Table) MovieName(i int) string { return t.movies[i] }

// Users returns a copy of the user names in table order.
func (t *Table) Users() []string { return append([]string(nil), t.users...) }

// Movies returns a copy of the movie names in table order.
func (t *Table) Movies() []string { return append([]string(nil), t.movies...) }

// FindUserIndex returns the index of the first user with the given name.
func (t *Table) FindUserIndex(name string) (int, error) {
	for i, u := range t.users {
		if u == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUserNotFound, name)
}
