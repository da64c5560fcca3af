package selection

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Density computes the representativeness of every row of X as its mean inner product with all
// rows (itself included) raised to the power beta. Since mean_j x_i·x_j = x_i·mean_j x_j this costs a
// single pass over X rather than the n×n similarity matrix. A beta of zero disables weighting and
// returns nil weights.
func Density(X *mat.Dense, beta float64) (Weights, error) {
	if beta == 0 {
		return nil, nil
	}
	if beta < 0 || math.IsNaN(beta) {
		return nil, errors.Errorf("density exponent must be non-negative, got %f", beta)
	}
	n, d := X.Dims()
	mean := make([]float64, d)
	for i := 0; i < n; i++ {
		floats.Add(mean, X.RawRowView(i))
	}
	floats.Scale(1/float64(n), mean)

	w := make(Weights, n)
	for i := range w {
		s := floats.Dot(X.RawRowView(i), mean)
		if s < 0 {
			return nil, errors.Errorf("row %d has negative mean similarity %f", i, s)
		}
		w[i] = math.Pow(s, beta)
	}
	return w, nil
}
