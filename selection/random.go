package selection

import (
	"math/rand"

	"github.com/hscells/activelearn/dataset"
	"github.com/pkg/errors"
)

// RandomStrategy draws a pool row uniformly at random. It never consults the committee.
type RandomStrategy struct{}

// Name implements Strategy.
func (RandomStrategy) Name() string {
	return Random
}

// Select implements Strategy.
func (RandomStrategy) Select(c Committee, pool dataset.Rows, w Weights, rng *rand.Rand) (int, error) {
	if len(pool.Index) == 0 {
		return 0, ErrEmptyPool
	}
	if rng == nil {
		return 0, errors.New("random selection requires a random source")
	}
	return rng.Intn(len(pool.Index)), nil
}
