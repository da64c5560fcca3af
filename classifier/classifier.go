// Package classifier contains the classifiers that make up a committee. Committees only depend on the
// Classifier interface, so any model that can be fit and can produce class probabilities may be used.
package classifier

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned when predicting with a classifier that has not been fit.
var ErrNotFitted = errors.New("classifier has not been fit")

// Classifier is a model that learns from labelled rows and predicts the class of unseen rows.
type Classifier interface {
	// Fit must train the classifier from scratch on the rows of X labelled by y.
	Fit(X mat.Matrix, y []int) error
	// Predict must return the most likely class of each row of X.
	Predict(X mat.Matrix) ([]int, error)
	// PredictProba must return a rows×classes matrix of class probabilities.
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}

// Factory creates an untrained classifier.
type Factory func() Classifier

// Kind is a named, configured classifier factory, e.g., the value of a command line option.
type Kind struct {
	Name    string
	Factory Factory
}

// checkFit verifies that a training set is usable and returns its size and number of classes.
func checkFit(X mat.Matrix, y []int) (n, d, classes int, err error) {
	n, d = X.Dims()
	if n == 0 {
		return 0, 0, 0, errors.New("cannot fit on an empty training set")
	}
	if n != len(y) {
		return 0, 0, 0, errors.Errorf("%d rows but %d labels", n, len(y))
	}
	for _, l := range y {
		if l < 0 {
			return 0, 0, 0, errors.Errorf("negative class label %d", l)
		}
		if l+1 > classes {
			classes = l + 1
		}
	}
	return n, d, classes, nil
}

// argmax returns the most probable class of every row of a probability matrix.
func argmax(p *mat.Dense) []int {
	r, _ := p.Dims()
	y := make([]int, r)
	for i := range y {
		y[i] = floats.MaxIdx(p.RawRowView(i))
	}
	return y
}

// predict implements Predict in terms of PredictProba.
func predict(c Classifier, X mat.Matrix) ([]int, error) {
	p, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return argmax(p), nil
}
