// Package activelearn provides a framework for reproducible query-by-committee active learning
// experiments: several selection strategies are compared by averaging their learning curves over
// many randomised trials.
package activelearn

import (
	"context"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/hscells/activelearn/classifier"
	"github.com/hscells/activelearn/committee"
	"github.com/hscells/activelearn/dataset"
	"github.com/hscells/activelearn/eval"
	"github.com/hscells/activelearn/learning"
	"github.com/hscells/activelearn/selection"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
)

// Experiment contains all the information for comparing selection strategies.
type Experiment struct {
	Pool       dataset.Dataset
	Test       dataset.Dataset
	Factories  []classifier.Factory
	Strategies []selection.Strategy
	Evaluator  eval.Evaluator

	MaxTrain int
	Trials   int
	// Beta is the density exponent; zero disables density weighting.
	Beta float64
	// Seed determines every random choice of the experiment.
	Seed int64
	// Workers is the number of trials run at once; zero means one per CPU, at most 16.
	Workers int
	// TrialTimeout bounds the duration of a single trial when positive.
	TrialTimeout time.Duration

	Check    bool
	Progress bool
	Verbose  bool
}

// NewExperiment creates an experiment over a pool and test set. Additional settings are provided
// via the optional functional arguments.
func NewExperiment(pool, test dataset.Dataset, factories []classifier.Factory, options ...func(*Experiment)) *Experiment {
	e := &Experiment{
		Pool:      pool,
		Test:      test,
		Factories: factories,
		Evaluator: eval.Accuracy,
		MaxTrain:  300,
		Trials:    100,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Strategies sets the strategies to compare.
func Strategies(s ...selection.Strategy) func(*Experiment) {
	return func(e *Experiment) {
		e.Strategies = s
	}
}

// MaxTrain sets the training set size trials stop at.
func MaxTrain(n int) func(*Experiment) {
	return func(e *Experiment) {
		e.MaxTrain = n
	}
}

// Trials sets the number of trials per strategy.
func Trials(n int) func(*Experiment) {
	return func(e *Experiment) {
		e.Trials = n
	}
}

// Beta sets the density exponent.
func Beta(beta float64) func(*Experiment) {
	return func(e *Experiment) {
		e.Beta = beta
	}
}

// Seed sets the seed of the random choices of the experiment.
func Seed(seed int64) func(*Experiment) {
	return func(e *Experiment) {
		e.Seed = seed
	}
}

// Workers sets the number of concurrent trials.
func Workers(n int) func(*Experiment) {
	return func(e *Experiment) {
		e.Workers = n
	}
}

// Validate checks the experiment can run before any trial starts.
func (e *Experiment) Validate() error {
	if len(e.Factories) < 2 {
		return committee.ErrCommitteeSize
	}
	if len(e.Strategies) == 0 {
		return errors.New("no selection strategies to compare")
	}
	if e.Trials < 1 {
		return errors.Errorf("number of trials must be positive, got %d", e.Trials)
	}
	if err := e.Pool.Validate(); err != nil {
		return errors.Wrap(err, "pool")
	}
	if err := e.Test.Validate(); err != nil {
		return errors.Wrap(err, "test")
	}
	if e.Pool.Dims() != e.Test.Dims() {
		return errors.Errorf("pool has %d features but test has %d", e.Pool.Dims(), e.Test.Dims())
	}
	if e.MaxTrain < e.Pool.Classes || e.MaxTrain > e.Pool.Len() {
		return errors.Errorf("maximum training size %d must be between the number of classes %d and the pool size %d", e.MaxTrain, e.Pool.Classes, e.Pool.Len())
	}
	return nil
}

func (e *Experiment) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	// Set the limit to how many goroutines can be run.
	maxConcurrency := 16
	concurrency := runtime.NumCPU()
	if concurrency > maxConcurrency {
		concurrency = maxConcurrency
	}
	return concurrency
}

// trialSeed derives the random seed of a trial so that it does not depend on scheduling.
func (e *Experiment) trialSeed(strategy, trial int) int64 {
	return e.Seed + int64(strategy*e.Trials+trial)
}

// Run compares the strategies and returns one curve per strategy, in the order of Strategies.
func (e *Experiment) Run(ctx context.Context) ([]Curve, error) {
	c := make(chan Result)
	go e.Execute(ctx, c)

	var curves []Curve
	for result := range c {
		switch result.Type {
		case CurveResult:
			curves = append(curves, result.Curve)
		case Error:
			// Drain so the experiment goroutine can finish.
			for range c {
			}
			return nil, result.Error
		}
	}
	return curves, nil
}

// Execute runs the experiment, sending the curve of each strategy through c as soon as it is
// complete. The channel is closed when the experiment finishes or fails.
func (e *Experiment) Execute(ctx context.Context, c chan Result) {
	defer close(c)
	if err := e.Validate(); err != nil {
		c <- Result{Error: err, Type: Error}
		return
	}

	log.Println("computing density weights...")
	weights, err := selection.Density(e.Pool.X, e.Beta)
	if err != nil {
		c <- Result{Error: err, Type: Error}
		return
	}

	for s, strategy := range e.Strategies {
		log.Printf("running %d trials of %s...\n", e.Trials, strategy.Name())
		curve, err := e.strategy(ctx, s, strategy, weights)
		if err != nil {
			c <- Result{Error: err, Type: Error}
			return
		}
		c <- Result{Curve: curve, Type: CurveResult}
	}
	c <- Result{Type: Done}
}

// strategy runs every trial of a strategy on a bounded pool of goroutines. Trials are stored by
// index, so the curve does not depend on the order they finish in.
func (e *Experiment) strategy(ctx context.Context, s int, strategy selection.Strategy, weights selection.Weights) (Curve, error) {
	loop := learning.Loop{
		Pool:      e.Pool,
		Test:      e.Test,
		Factories: e.Factories,
		Strategy:  strategy,
		MaxTrain:  e.MaxTrain,
		Weights:   weights,
		Evaluator: e.Evaluator,
		Check:     e.Check,
		Verbose:   e.Verbose,
	}

	var bar *pb.ProgressBar
	if e.Progress {
		bar = pb.New(e.Trials).Prefix(strategy.Name() + " ")
		bar.Start()
		defer bar.Finish()
	}

	trials := make([]learning.Trial, e.Trials)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for n := 0; n < e.Trials; n++ {
		n := n
		g.Go(func() error {
			rng := rand.New(rand.NewSource(e.trialSeed(s, n)))
			seed, err := learning.Seed(e.Pool.Y, e.Pool.Classes, rng)
			if err != nil {
				return err
			}

			tCtx := gCtx
			if e.TrialTimeout > 0 {
				var cancel context.CancelFunc
				tCtx, cancel = context.WithTimeout(gCtx, e.TrialTimeout)
				defer cancel()
			}
			trial, err := loop.Run(tCtx, n, seed, rng)
			if err != nil {
				return errors.Wrapf(err, "%s trial %d", strategy.Name(), n)
			}
			trials[n] = trial
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Curve{}, err
	}

	curve := Curve{
		Strategy: strategy.Name(),
		SeedSize: trials[0].SeedSize,
		Trials:   make([][]float64, len(trials)),
		Queries:  make([][]int, len(trials)),
	}
	for i, trial := range trials {
		curve.Trials[i] = trial.Accuracies
		curve.Queries[i] = trial.Queries
	}
	return curve, nil
}
