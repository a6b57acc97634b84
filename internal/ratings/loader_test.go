package ratings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadBasic(t *testing.T) {
	input := `,Inception,Up,Heat
Alice,5,3,
Bob,4,,
Carol,,,5
`
	tbl, stats, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tbl.Movies(); len(got) != 3 || got[0] != "Inception" || got[2] != "Heat" {
		t.Errorf("unexpected movies: %v", got)
	}
	if got := tbl.Users(); len(got) != 3 || got[1] != "Bob" {
		t.Errorf("unexpected users: %v", got)
	}
	if tbl.Get(0, 0) != 5 || tbl.Get(0, 1) != 3 || tbl.Get(0, 2) != 0 {
		t.Errorf("unexpected Alice row: %v", tbl.Row(0))
	}
	if tbl.Get(2, 2) != 5 {
		t.Errorf("expected Carol/Heat = 5, got %d", tbl.Get(2, 2))
	}
	if stats.Rows != 3 || stats.Padded != 0 || stats.Truncated != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestReadNormalizesRowLength(t *testing.T) {
	input := `,X,Y,Z
A,5
B,1,2,3,4
C,1,2,3
`
	tbl, stats, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for u := 0; u < tbl.NumUsers(); u++ {
		if len(tbl.Row(u)) != 3 {
			t.Errorf("row %d has %d cells, want 3", u, len(tbl.Row(u)))
		}
	}
	if stats.Padded != 1 {
		t.Errorf("expected 1 padded row, got %d", stats.Padded)
	}
	if stats.Truncated != 1 {
		t.Errorf("expected 1 truncated row, got %d", stats.Truncated)
	}
}

func TestReadSkipsBlankLinesAndTrims(t *testing.T) {
	input := ", X , Y\n\n A , 2 , 4 \n , , \nB,1,\n"
	tbl, _, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.NumUsers() != 2 {
		t.Fatalf("expected 2 users, got %d (%v)", tbl.NumUsers(), tbl.Users())
	}
	if tbl.MovieName(0) != "X" || tbl.UserName(0) != "A" {
		t.Errorf("names not trimmed: movie %q user %q", tbl.MovieName(0), tbl.UserName(0))
	}
	if tbl.Get(0, 1) != 4 {
		t.Errorf("expected A/Y = 4, got %d", tbl.Get(0, 1))
	}
}

func TestReadBareQuotesInNames(t *testing.T) {
	input := ",The \"Best\" Film,Up\nDwayne \"The Rock\",5,3\n"

	tbl, _, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tbl.MovieName(0); got != `The "Best" Film` {
		t.Errorf("MovieName(0) = %q", got)
	}
	if got := tbl.UserName(0); got != `Dwayne "The Rock"` {
		t.Errorf("UserName(0) = %q", got)
	}
	if tbl.Get(0, 0) != 5 || tbl.Get(0, 1) != 3 {
		t.Errorf("unexpected ratings: %v", tbl.Row(0))
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "empty"},
		{"bad rating", ",X,Y\nA,5,great\n", `line 2, column 3: invalid rating "great"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	if err := os.WriteFile(path, []byte(",X\nA,3\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tbl, _, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Get(0, 0) != 3 {
		t.Errorf("expected 3, got %d", tbl.Get(0, 0))
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
