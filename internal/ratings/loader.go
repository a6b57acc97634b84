package ratings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadStats describes how much normalization a load needed.
type LoadStats struct {
	Rows      int
	Padded    int
	Truncated int
}

// Load reads a ratings table from a CSV file.
func Load(path string) (*Table, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening ratings file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a ratings table in CSV form.
//
// The first record holds the movie names; empty header cells (typically the
// corner above the user column) are skipped. Every following record is a
// user name followed by one rating per movie, where an empty cell means
// unrated. Records with the wrong number of ratings are padded with 0 or
// truncated to the movie count.
func Read(r io.Reader) (*Table, LoadStats, error) {
	var stats LoadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("ratings file is empty")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	var movies []string
	for _, cell := range header {
		if name := strings.TrimSpace(cell); name != "" {
			movies = append(movies, name)
		}
	}

	var users []string
	var rows [][]int
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading ratings: %w", err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		row, err := parseRow(record[1:], line)
		if err != nil {
			return nil, stats, err
		}

		switch {
		case len(row) < len(movies):
			stats.Padded++
		case len(row) > len(movies):
			stats.Truncated++
		}

		users = append(users, strings.TrimSpace(record[0]))
		rows = append(rows, row)
	}
	stats.Rows = len(users)

	return New(movies, users, rows), stats, nil
}

func parseRow(cells []string, line int) ([]int, error) {
	row := make([]int, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.Atoi(cell)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: invalid rating %q", line, i+2, cell)
		}
		row[i] = v
	}
	return row, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
