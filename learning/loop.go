package learning

import (
	"context"
	"log"
	"math/rand"

	"github.com/hscells/activelearn/classifier"
	"github.com/hscells/activelearn/committee"
	"github.com/hscells/activelearn/dataset"
	"github.com/hscells/activelearn/eval"
	"github.com/hscells/activelearn/selection"
	"github.com/pkg/errors"
)

// Trial is the outcome of one run of the active learning loop. Accuracies[i] is the score of the
// committee trained on SeedSize+i rows, and Queries lists the pool rows in the order they were
// selected.
type Trial struct {
	Strategy   string
	Index      int
	SeedSize   int
	Accuracies []float64
	Queries    []int
}

// Loop holds everything that stays fixed across the trials of a strategy.
type Loop struct {
	Pool      dataset.Dataset
	Test      dataset.Dataset
	Factories []classifier.Factory
	Strategy  selection.Strategy
	MaxTrain  int
	Weights   selection.Weights
	// Evaluator scores the committee on the test set, Accuracy when nil.
	Evaluator eval.Evaluator
	// Check validates the partition after every move.
	Check bool
	// Observe, when set, is called with the partition after every retraining.
	Observe func(p *Partition)
	Verbose bool
}

// Run performs one trial starting from the seed training rows. It records exactly
// MaxTrain-len(seed)+1 scores: the first for the seed set, then one after every query.
func (l Loop) Run(ctx context.Context, trial int, seed []int, rng *rand.Rand) (Trial, error) {
	if l.Strategy == nil {
		return Trial{}, errors.New("no selection strategy")
	}
	n := l.Pool.Len()
	if l.MaxTrain < len(seed) || l.MaxTrain > n {
		return Trial{}, errors.Errorf("maximum training size %d must be between the seed size %d and the pool size %d", l.MaxTrain, len(seed), n)
	}
	evaluator := l.Evaluator
	if evaluator == nil {
		evaluator = eval.Accuracy
	}
	c, err := committee.New(l.Factories, l.Pool.Classes)
	if err != nil {
		return Trial{}, err
	}
	p, err := NewPartition(n, seed)
	if err != nil {
		return Trial{}, err
	}

	t := Trial{
		Strategy:   l.Strategy.Name(),
		Index:      trial,
		SeedSize:   len(seed),
		Accuracies: make([]float64, 0, l.MaxTrain-len(seed)+1),
		Queries:    make([]int, 0, l.MaxTrain-len(seed)),
	}
	test := l.Test.Rows(all(l.Test.Len()))
	for {
		if err := ctx.Err(); err != nil {
			return Trial{}, errors.Wrapf(err, "trial %d of %s", trial, t.Strategy)
		}

		if len(t.Accuracies) > 0 {
			x, err := l.Strategy.Select(c, l.Pool.Rows(p.Pool), l.Weights, rng)
			if err != nil {
				return Trial{}, errors.Wrapf(err, "selecting with %s", t.Strategy)
			}
			row, err := p.Move(x)
			if err != nil {
				return Trial{}, err
			}
			t.Queries = append(t.Queries, row)
			if l.Check {
				if err := p.Validate(); err != nil {
					return Trial{}, err
				}
			}
		}

		if err := c.Train(l.Pool.Rows(p.Train), l.Pool.Labels(p.Train)); err != nil {
			return Trial{}, errors.Wrapf(err, "training on %d rows", len(p.Train))
		}
		if l.Observe != nil {
			l.Observe(p)
		}

		predicted, err := c.AggregatePredict(test)
		if err != nil {
			return Trial{}, err
		}
		score := evaluator.Score(predicted, l.Test.Y)
		if l.Verbose {
			log.Printf("%d : %d / %d = %f\n", len(p.Train), eval.Correct(predicted, l.Test.Y), l.Test.Len(), score)
		}
		t.Accuracies = append(t.Accuracies, score)

		if len(p.Train) >= l.MaxTrain {
			return t, nil
		}
	}
}

// all returns the indices [0, n).
func all(n int) []int {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return index
}
