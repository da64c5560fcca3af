package committee_test

import (
	"errors"
	"testing"

	"github.com/hscells/activelearn/classifier"
	"github.com/hscells/activelearn/committee"
	"gonum.org/v1/gonum/mat"
)

// fixed is a classifier that predicts the same distribution for every row.
type fixed struct {
	p    []float64
	fail bool
}

func (f *fixed) Fit(X mat.Matrix, y []int) error {
	if f.fail {
		return errors.New("fit failed")
	}
	return nil
}

func (f *fixed) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	r, _ := X.Dims()
	p := mat.NewDense(r, len(f.p), nil)
	for i := 0; i < r; i++ {
		p.SetRow(i, f.p)
	}
	return p, nil
}

func (f *fixed) Predict(X mat.Matrix) ([]int, error) {
	r, _ := X.Dims()
	best := 0
	for k, v := range f.p {
		if v > f.p[best] {
			best = k
		}
	}
	y := make([]int, r)
	for i := range y {
		y[i] = best
	}
	return y, nil
}

func factory(p ...float64) classifier.Factory {
	return func() classifier.Classifier {
		return &fixed{p: p}
	}
}

var rows = mat.NewDense(2, 1, []float64{0, 1})

func TestNewRequiresTwoMembers(t *testing.T) {
	if _, err := committee.New([]classifier.Factory{factory(1)}, 1); err != committee.ErrCommitteeSize {
		t.Fatalf("expected ErrCommitteeSize, got %v", err)
	}
}

func TestAggregatePredictSumRule(t *testing.T) {
	// Two members narrowly prefer class 0 and one strongly prefers class 1. A majority vote picks
	// class 0 but the summed distribution picks class 1.
	c, err := committee.New([]classifier.Factory{
		factory(0.55, 0.45),
		factory(0.55, 0.45),
		factory(0.0, 1.0),
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AggregatePredict(rows); err != committee.ErrUntrained {
		t.Fatalf("expected ErrUntrained, got %v", err)
	}
	if err := c.Train(rows, []int{0, 1}); err != nil {
		t.Fatal(err)
	}

	y, err := c.AggregatePredict(rows)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if v != 1 {
			t.Errorf("row %d: expected class 1, got %d", i, v)
		}
	}

	votes, err := c.Votes(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(votes) != 3 || votes[0][0] != 0 || votes[2][1] != 1 {
		t.Errorf("unexpected votes %v", votes)
	}
}

func TestPredictDistributionPads(t *testing.T) {
	c, err := committee.New([]classifier.Factory{factory(0.5, 0.5), factory(0.2, 0.3, 0.5)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Train(rows, []int{0, 1}); err != nil {
		t.Fatal(err)
	}
	dists, err := c.PredictDistribution(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(dists) != 2 {
		t.Fatalf("expected a distribution per member, got %d", len(dists))
	}
	for _, p := range dists {
		if r, k := p.Dims(); r != 2 || k != 3 {
			t.Fatalf("expected 2x3 distribution, got %dx%d", r, k)
		}
	}
	if dists[0].At(1, 2) != 0 || dists[0].At(1, 1) != 0.5 {
		t.Errorf("unexpected padding %v", mat.Formatted(dists[0]))
	}

	wide, _ := committee.New([]classifier.Factory{factory(0.5, 0.5), factory(0.2, 0.3, 0.5)}, 2)
	if err := wide.Train(rows, []int{0, 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := wide.PredictDistribution(rows); err == nil {
		t.Error("expected an error for a member predicting too many classes")
	}
}

func TestTrainFailureIsAllOrNothing(t *testing.T) {
	fail := false
	flaky := func() classifier.Classifier {
		return &fixed{p: []float64{0, 1}, fail: fail}
	}
	c, err := committee.New([]classifier.Factory{factory(1, 0), flaky}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Train(rows, []int{0, 1}); err != nil {
		t.Fatal(err)
	}

	fail = true
	if err := c.Train(rows, []int{0, 1}); err == nil {
		t.Fatal("expected the member failure to fail training")
	}
	// The previously trained members are still in place.
	if _, err := c.AggregatePredict(rows); err != nil {
		t.Fatal(err)
	}
}
