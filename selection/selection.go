// Package selection contains the strategies used to choose which pool example is labelled next.
//
// Committee based strategies assign every pool row a score where a lower score means the row is more
// informative, optionally multiply the scores by density weights, and select the first row with the
// minimum score.
package selection

import (
	"math/rand"
	"strings"

	"github.com/hscells/activelearn/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Names of the strategies.
const (
	Random           = "random"
	VoteDisagreement = "vote-disagreement"
	VoteAgreement    = "vote-agreement"
	AverageKL        = "average-KL"
)

// ErrEmptyPool is returned when asked to select from a pool with no rows left in it.
var ErrEmptyPool = errors.New("cannot select from an empty pool")

// Committee is the view of a committee that strategies need to score pool rows.
type Committee interface {
	Size() int
	Votes(X mat.Matrix) ([][]int, error)
	PredictDistribution(X mat.Matrix) ([]*mat.Dense, error)
}

// Strategy chooses the next pool row to label. Select returns a position in pool, i.e., the row
// pool.Index[i] of the pool dataset.
type Strategy interface {
	Name() string
	Select(c Committee, pool dataset.Rows, w Weights, rng *rand.Rand) (int, error)
}

// Scorer computes an informativeness score for every row of a pool; lower is more informative.
type Scorer interface {
	Score(c Committee, pool mat.Matrix) ([]float64, error)
}

// ScoreStrategy selects the row with the lowest (density weighted) score of a Scorer.
type ScoreStrategy struct {
	name   string
	Scorer Scorer
}

// NewScoreStrategy creates a named strategy from a scorer.
func NewScoreStrategy(name string, s Scorer) ScoreStrategy {
	return ScoreStrategy{name: name, Scorer: s}
}

// Name implements Strategy.
func (s ScoreStrategy) Name() string {
	return s.name
}

// Select implements Strategy.
func (s ScoreStrategy) Select(c Committee, pool dataset.Rows, w Weights, rng *rand.Rand) (int, error) {
	if len(pool.Index) == 0 {
		return 0, ErrEmptyPool
	}
	scores, err := s.Scorer.Score(c, pool)
	if err != nil {
		return 0, errors.Wrapf(err, "scoring pool for %s", s.name)
	}
	if len(scores) != len(pool.Index) {
		return 0, errors.Errorf("%s scored %d rows of a pool of %d", s.name, len(scores), len(pool.Index))
	}
	w.Apply(scores, pool.Index)
	return ArgMin(scores)
}

// ArgMin returns the index of the first minimum score.
func ArgMin(scores []float64) (int, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyPool
	}
	return floats.MinIdx(scores), nil
}

// Names is the list of strategies compared by default.
func Names() []string {
	return []string{Random, VoteDisagreement, AverageKL}
}

// ByName creates a strategy from its (case insensitive) name; "vote entropy" and "average KL" are
// accepted as aliases.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case strings.ToLower(Random):
		return RandomStrategy{}, nil
	case strings.ToLower(VoteDisagreement), "vote entropy", "vote-entropy":
		return NewScoreStrategy(VoteDisagreement, VoteEntropy{}), nil
	case strings.ToLower(VoteAgreement):
		return NewScoreStrategy(VoteAgreement, PairwiseAgreement{}), nil
	case strings.ToLower(AverageKL), "average kl":
		return NewScoreStrategy(AverageKL, KLDivergence{}), nil
	}
	return nil, errors.Errorf("unknown selection strategy %q", name)
}

// Weights are per-row multipliers of selection scores, indexed by row of the pool dataset. A nil
// Weights leaves scores unchanged.
type Weights []float64

// Apply multiplies each score by the weight of the pool row it belongs to.
func (w Weights) Apply(scores []float64, index []int) {
	if w == nil {
		return
	}
	for i, j := range index {
		scores[i] *= w[j]
	}
}
