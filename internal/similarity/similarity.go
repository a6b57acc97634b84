package similarity

import (
	"math"

	"github.com/jacklau/movierec/internal/ratings"
)

// CoRated computes the cosine similarity between two rating vectors,
// restricted to the positions both vectors rated (non-zero). Returns 0 when
// the vectors share no rated position or either restricted norm is zero.
// Vectors of different lengths are compared over the shorter prefix.
func CoRated(a, b []int) float64 {
	n := min(len(a), len(b))

	var dot, normA, normB float64
	common := 0

	for i := 0; i < n; i++ {
		if a[i] == 0 || b[i] == 0 {
			continue
		}
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
		common++
	}

	if common == 0 || normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matrix is a symmetric users × users similarity matrix. The diagonal is
// always 0: self-similarity is never computed.
type Matrix struct {
	n     int
	cells []float64
}

// Compute builds the similarity matrix for every pair of distinct users in t.
// Each unordered pair is computed once and mirrored. Cost is O(N²·M) time and
// O(N²) space in the number of users N and movies M.
func Compute(t *ratings.Table) *Matrix {
	n := t.NumUsers()
	m := &Matrix{n: n, cells: make([]float64, n*n)}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := CoRated(t.Row(i), t.Row(j))
			m.cells[i*n+j] = s
			m.cells[j*n+i] = s
		}
	}
	return m
}

// Len returns the number of users covered by the matrix.
func (m *Matrix) Len() int { return m.n }

// At returns the similarity between users i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.cells[i*m.n+j]
}
