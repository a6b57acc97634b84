package predict

import (
	"math"

	"github.com/jacklau/movierec/internal/ratings"
	"github.com/jacklau/movierec/internal/similarity"
)

// Predictor estimates ratings as similarity-weighted averages of the ratings
// other users gave a movie.
type Predictor struct {
	table *ratings.Table
	sims  *similarity.Matrix
}

// New creates a Predictor over a ratings table and its similarity matrix.
func New(table *ratings.Table, sims *similarity.Matrix) *Predictor {
	return &Predictor{table: table, sims: sims}
}

// Predict returns the predicted rating of user for movie.
//
// Every row with a rating for movie contributes, the user's own row included.
// Its weight is the matrix diagonal, which is 0, so an own rating never moves
// the result.
//
// The boolean is false when there is no signal: nobody rated the movie, or
// every rater has similarity 0 to user. The value is then 0, which callers
// must not confuse with a genuine prediction of 0.
func (p *Predictor) Predict(user, movie int) (float64, bool) {
	var weightedSum, normalizer float64

	for k := 0; k < p.table.NumUsers(); k++ {
		r := p.table.Get(k, movie)
		if r == 0 {
			continue
		}
		sim := p.sims.At(user, k)
		weightedSum += sim * float64(r)
		normalizer += math.Abs(sim)
	}

	if normalizer == 0 {
		return 0, false
	}
	return weightedSum / normalizer, true
}
