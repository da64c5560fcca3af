// Package committee combines independently trained classifiers, both to decide the class of a row
// and to measure how much the classifiers disagree about it.
package committee

import (
	"github.com/hscells/activelearn/classifier"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrCommitteeSize is returned when a committee is configured with fewer than two classifiers.
	ErrCommitteeSize = errors.New("a committee requires at least two classifiers")
	// ErrUntrained is returned when predicting with a committee that has not been trained.
	ErrUntrained = errors.New("committee has not been trained")
	// ErrNoRows is returned when asked to predict an empty set of rows.
	ErrNoRows = errors.New("no rows to predict")
)

// Committee is a fixed list of classifiers that are retrained from scratch together.
type Committee struct {
	factories []classifier.Factory
	classes   int
	members   []classifier.Classifier
}

// New creates an untrained committee with one member per factory, predicting over the given number
// of classes.
func New(factories []classifier.Factory, classes int) (*Committee, error) {
	if len(factories) < 2 {
		return nil, ErrCommitteeSize
	}
	if classes < 1 {
		return nil, errors.Errorf("invalid number of classes %d", classes)
	}
	return &Committee{
		factories: factories,
		classes:   classes,
	}, nil
}

// Size is the number of members of the committee.
func (c *Committee) Size() int {
	return len(c.factories)
}

// Classes is the width of the distributions the committee predicts.
func (c *Committee) Classes() int {
	return c.classes
}

// Train fits fresh members on the rows of X labelled by y. Either every member is trained or the
// committee is left as it was.
func (c *Committee) Train(X mat.Matrix, y []int) error {
	members := make([]classifier.Classifier, len(c.factories))
	for i, f := range c.factories {
		m := f()
		if err := m.Fit(X, y); err != nil {
			return errors.Wrapf(err, "fitting committee member %d", i)
		}
		members[i] = m
	}
	c.members = members
	return nil
}

// PredictDistribution returns one rows×classes probability matrix per member.
func (c *Committee) PredictDistribution(X mat.Matrix) ([]*mat.Dense, error) {
	if c.members == nil {
		return nil, ErrUntrained
	}
	if r, _ := X.Dims(); r == 0 {
		return nil, ErrNoRows
	}
	dists := make([]*mat.Dense, len(c.members))
	for i, m := range c.members {
		p, err := m.PredictProba(X)
		if err != nil {
			return nil, errors.Wrapf(err, "committee member %d", i)
		}
		r, k := p.Dims()
		switch {
		case k > c.classes:
			return nil, errors.Errorf("committee member %d predicted %d classes, expected %d", i, k, c.classes)
		case k < c.classes:
			// Members only know the classes they were fit on; the remainder have zero probability.
			padded := mat.NewDense(r, c.classes, nil)
			padded.Slice(0, r, 0, k).(*mat.Dense).Copy(p)
			p = padded
		}
		dists[i] = p
	}
	return dists, nil
}

// Votes returns the hard prediction of every member for every row (members×rows).
func (c *Committee) Votes(X mat.Matrix) ([][]int, error) {
	if c.members == nil {
		return nil, ErrUntrained
	}
	if r, _ := X.Dims(); r == 0 {
		return nil, ErrNoRows
	}
	votes := make([][]int, len(c.members))
	for i, m := range c.members {
		v, err := m.Predict(X)
		if err != nil {
			return nil, errors.Wrapf(err, "committee member %d", i)
		}
		votes[i] = v
	}
	return votes, nil
}

// AggregatePredict sums the member distributions of each row and predicts the class with the largest
// total. Ties go to the lowest class.
func (c *Committee) AggregatePredict(X mat.Matrix) ([]int, error) {
	dists, err := c.PredictDistribution(X)
	if err != nil {
		return nil, err
	}
	r, _ := X.Dims()
	sum := mat.NewDense(r, c.classes, nil)
	for _, p := range dists {
		sum.Add(sum, p)
	}
	y := make([]int, r)
	for i := range y {
		y[i] = floats.MaxIdx(sum.RawRowView(i))
	}
	return y, nil
}
