package classifier

import (
	"math"

	"github.com/hscells/activelearn/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MultinomialNB is a multinomial naive Bayes classifier for count features with additive (Lidstone)
// smoothing of the feature counts.
type MultinomialNB struct {
	Alpha float64

	logPrior []float64
	logProb  *mat.Dense // classes×features
}

// NewMultinomialNB creates a naive Bayes factory with smoothing parameter alpha.
func NewMultinomialNB(alpha float64) Factory {
	return func() Classifier {
		return &MultinomialNB{Alpha: alpha}
	}
}

// Fit implements Classifier.
func (nb *MultinomialNB) Fit(X mat.Matrix, y []int) error {
	if nb.Alpha < 0 {
		return errors.Errorf("naive bayes smoothing must be non-negative, got %f", nb.Alpha)
	}
	n, d, classes, err := checkFit(X, y)
	if err != nil {
		return err
	}

	counts := mat.NewDense(classes, d, nil)
	docs := make([]float64, classes)
	buf := make([]float64, d)
	for i := 0; i < n; i++ {
		row := dataset.Row(X, i, buf)
		for _, v := range row {
			if v < 0 {
				return errors.Errorf("naive bayes requires non-negative features, row %d has %f", i, v)
			}
		}
		floats.Add(counts.RawRowView(y[i]), row)
		docs[y[i]]++
	}

	nb.logPrior = make([]float64, classes)
	nb.logProb = mat.NewDense(classes, d, nil)
	for k := 0; k < classes; k++ {
		nb.logPrior[k] = math.Log(docs[k] / float64(n))
		c := counts.RawRowView(k)
		total := floats.Sum(c) + nb.Alpha*float64(d)
		lp := nb.logProb.RawRowView(k)
		for j, v := range c {
			lp[j] = math.Log((v + nb.Alpha) / total)
		}
	}
	return nil
}

// PredictProba implements Classifier.
func (nb *MultinomialNB) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if nb.logProb == nil {
		return nil, ErrNotFitted
	}
	n, d := X.Dims()
	classes, features := nb.logProb.Dims()
	if d != features {
		return nil, errors.Errorf("classifier was fit with %d features, got %d", features, d)
	}

	p := mat.NewDense(n, classes, nil)
	buf := make([]float64, d)
	jll := make([]float64, classes)
	for i := 0; i < n; i++ {
		row := dataset.Row(X, i, buf)
		for k := 0; k < classes; k++ {
			lp := nb.logProb.RawRowView(k)
			s := nb.logPrior[k]
			for j, v := range row {
				if v != 0 {
					s += v * lp[j]
				}
			}
			jll[k] = s
		}
		norm := floats.LogSumExp(jll)
		out := p.RawRowView(i)
		for k, s := range jll {
			out[k] = math.Exp(s - norm)
		}
	}
	return p, nil
}

// Predict implements Classifier.
func (nb *MultinomialNB) Predict(X mat.Matrix) ([]int, error) {
	return predict(nb, X)
}
