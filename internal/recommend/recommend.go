package recommend

import (
	"fmt"
	"sort"

	"github.com/jacklau/movierec/internal/predict"
	"github.com/jacklau/movierec/internal/ratings"
	"github.com/jacklau/movierec/internal/similarity"
)

// DefaultTopN is the number of recommendations returned when none is configured.
const DefaultTopN = 5

// Rating is an observed rating of a movie.
type Rating struct {
	Movie  int    `json:"movie"`
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

// Prediction is a predicted rating of a movie. Rating holds the exact,
// untruncated value. When HasSignal is false no prediction was possible and
// Rating is 0.
type Prediction struct {
	Movie     int     `json:"movie"`
	Title     string  `json:"title"`
	Rating    float64 `json:"predicted_rating"`
	HasSignal bool    `json:"has_signal"`
}

// Ranked is a Prediction with its 1-based position in a top-N list.
type Ranked struct {
	Rank int `json:"rank"`
	Prediction
}

// Report bundles everything computed for one user.
type Report struct {
	User      string       `json:"user"`
	N         int          `json:"n"`
	Rated     []Rating     `json:"rated"`
	Predicted []Prediction `json:"predicted"`
	Top       []Ranked     `json:"top"`
}

// Recommender answers per-user queries over a fixed ratings table.
type Recommender struct {
	table     *ratings.Table
	predictor *predict.Predictor
}

// New creates a Recommender from a table and its similarity matrix.
func New(table *ratings.Table, sims *similarity.Matrix) *Recommender {
	return &Recommender{
		table:     table,
		predictor: predict.New(table, sims),
	}
}

// Rated returns the movies user has rated, in movie order.
func (r *Recommender) Rated(user string) ([]Rating, error) {
	u, err := r.table.FindUserIndex(user)
	if err != nil {
		return nil, err
	}

	out := make([]Rating, 0)
	for m := 0; m < r.table.NumMovies(); m++ {
		if v := r.table.Get(u, m); v != 0 {
			out = append(out, Rating{Movie: m, Title: r.table.MovieName(m), Rating: v})
		}
	}
	return out, nil
}

// PredictUnrated returns a prediction for every movie user has not rated,
// in movie order.
func (r *Recommender) PredictUnrated(user string) ([]Prediction, error) {
	u, err := r.table.FindUserIndex(user)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, 0)
	for m := 0; m < r.table.NumMovies(); m++ {
		if !r.table.IsRated(u, m) {
			out = append(out, r.prediction(u, m))
		}
	}
	return out, nil
}

// TopN ranks every movie by its predicted rating for user and returns the
// first min(n, movies) entries.
//
// Rated movies are ranked by their prediction too, not by the observed
// rating. Candidates are collected unrated first, then rated, each group in
// movie order, and a stable sort keeps that order among equal predictions.
// A movie without signal ranks as 0.
func (r *Recommender) TopN(user string, n int) ([]Ranked, error) {
	u, err := r.table.FindUserIndex(user)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Ranked{}, nil
	}

	candidates := make([]Prediction, 0, r.table.NumMovies())
	for m := 0; m < r.table.NumMovies(); m++ {
		if !r.table.IsRated(u, m) {
			candidates = append(candidates, r.prediction(u, m))
		}
	}
	for m := 0; m < r.table.NumMovies(); m++ {
		if r.table.IsRated(u, m) {
			candidates = append(candidates, r.prediction(u, m))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating > candidates[j].Rating
	})

	n = min(n, len(candidates))
	out := make([]Ranked, n)
	for i := range out {
		out[i] = Ranked{Rank: i + 1, Prediction: candidates[i]}
	}
	return out, nil
}

// Recommend runs Rated, PredictUnrated and TopN for user.
func (r *Recommender) Recommend(user string, n int) (*Report, error) {
	rated, err := r.Rated(user)
	if err != nil {
		return nil, err
	}
	predicted, err := r.PredictUnrated(user)
	if err != nil {
		return nil, fmt.Errorf("predicting unrated movies: %w", err)
	}
	top, err := r.TopN(user, n)
	if err != nil {
		return nil, fmt.Errorf("ranking movies: %w", err)
	}

	return &Report{
		User:      user,
		N:         n,
		Rated:     rated,
		Predicted: predicted,
		Top:       top,
	}, nil
}

func (r *Recommender) prediction(user, movie int) Prediction {
	v, ok := r.predictor.Predict(user, movie)
	return Prediction{
		Movie:     movie,
		Title:     r.table.MovieName(movie),
		Rating:    v,
		HasSignal: ok,
	}
}
