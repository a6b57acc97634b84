package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jacklau/movierec/internal/recommend"
)

// NoPrediction is displayed in place of a value when a prediction has no signal.
const NoPrediction = "no prediction"

// DisplayRating truncates a predicted rating toward zero for display.
// Ranking always happens on the exact value; this is the only place
// predictions lose their fractional part.
func DisplayRating(v float64) int {
	return int(v)
}

// FormatPrediction returns the display form of a prediction.
// Example: "3", or "no prediction"
func FormatPrediction(p recommend.Prediction) string {
	if !p.HasSignal {
		return NoPrediction
	}
	return strconv.Itoa(DisplayRating(p.Rating))
}

// WriteText writes the rated movies, unrated predictions and top-N list of a
// report in plain text.
func WriteText(w io.Writer, r *recommend.Report) error {
	ew := &errWriter{w: w}

	ew.printf("Rated movies of %s:\n", r.User)
	if len(r.Rated) == 0 {
		ew.printf("No rated movies for this user.\n")
	}
	for _, m := range r.Rated {
		ew.printf("%s -> Rating: %d\n", m.Title, m.Rating)
	}

	ew.printf("\nPredicted ratings for unrated movies of %s:\n", r.User)
	if len(r.Predicted) == 0 {
		ew.printf("No unrated movies.\n")
	}
	for _, p := range r.Predicted {
		ew.printf("%s: %s\n", p.Title, FormatPrediction(p))
	}

	ew.printf("\nTop %d recommended movies for %s:\n", r.N, r.User)
	for _, rk := range r.Top {
		ew.printf("Rank %d: %s with predicted rating: %s\n", rk.Rank, rk.Title, FormatPrediction(rk.Prediction))
	}

	return ew.err
}

// WriteJSON writes the report as indented JSON with exact prediction values.
func WriteJSON(w io.Writer, r *recommend.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// errWriter remembers the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
