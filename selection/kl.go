package selection

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// KLDivergence scores a row by Σ_m Σ_k p_mk·log(c_k/p_mk), where p_m is the distribution of member m
// and c is the mean distribution of the committee. The score is the negated sum of the members'
// KL divergences from the consensus, so the lowest score is the row the committee disagrees on most.
// Terms that are undefined (a member assigning zero probability) count as zero.
type KLDivergence struct{}

// Score implements Scorer.
func (KLDivergence) Score(c Committee, pool mat.Matrix) ([]float64, error) {
	dists, err := c.PredictDistribution(pool)
	if err != nil {
		return nil, err
	}
	if len(dists) == 0 {
		return nil, errors.New("committee has no members")
	}
	n, classes := dists[0].Dims()
	for _, p := range dists[1:] {
		if r, k := p.Dims(); r != n || k != classes {
			return nil, errors.Errorf("member distributions differ in shape: %dx%d and %dx%d", n, classes, r, k)
		}
	}

	m := float64(len(dists))
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for k := 0; k < classes; k++ {
			first := dists[0].At(i, k)
			sum, same := 0.0, true
			for _, p := range dists {
				v := p.At(i, k)
				sum += v
				same = same && v == first
			}
			consensus := sum / m
			if same {
				// Identical members agree exactly with their mean.
				consensus = first
			}
			for _, p := range dists {
				v := p.At(i, k)
				t := v * math.Log(consensus/v)
				if math.IsNaN(t) || math.IsInf(t, 0) {
					t = 0
				}
				s += t
			}
		}
		scores[i] = s
	}
	return scores, nil
}
