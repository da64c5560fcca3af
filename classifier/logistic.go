package classifier

import (
	"math"

	"github.com/hscells/activelearn/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Penalty is the regularisation applied to the weights of a logistic regression.
type Penalty uint8

const (
	// L2 penalises the squared norm of the weights.
	L2 Penalty = iota
	// L1 penalises the absolute norm of the weights, producing sparse models.
	L1
)

func (p Penalty) String() string {
	if p == L1 {
		return "l1"
	}
	return "l2"
}

// LogisticRegression is a multinomial (softmax) logistic regression trained with full-batch
// proximal gradient descent. C is the inverse of the regularisation strength as in LIBLINEAR, so the
// objective is the mean cross entropy plus |w|/(C·n) for L1 or |w|²/(2·C·n) for L2. LearningRate is
// relative to the inverse Lipschitz constant of the loss gradient; values up to 1 always descend.
type LogisticRegression struct {
	C            float64
	Penalty      Penalty
	Iterations   int
	LearningRate float64

	classes int
	w       *mat.Dense // classes×features
	b       []float64
}

// NewLogisticRegression creates a logistic regression factory with sensible optimisation defaults.
func NewLogisticRegression(penalty Penalty, c float64) Factory {
	return func() Classifier {
		return &LogisticRegression{
			C:            c,
			Penalty:      penalty,
			Iterations:   100,
			LearningRate: 1,
		}
	}
}

// softmax computes class probabilities for a row into p.
func (lr *LogisticRegression) softmax(x, p []float64) {
	for k := range p {
		p[k] = lr.b[k] + floats.Dot(lr.w.RawRowView(k), x)
	}
	norm := floats.LogSumExp(p)
	for k := range p {
		p[k] = math.Exp(p[k] - norm)
	}
}

// Fit implements Classifier. Weights start at zero, so fitting is deterministic.
func (lr *LogisticRegression) Fit(X mat.Matrix, y []int) error {
	if lr.C <= 0 {
		return errors.Errorf("logistic regression requires C > 0, got %f", lr.C)
	}
	if lr.Iterations <= 0 || lr.LearningRate <= 0 {
		return errors.New("logistic regression requires positive iterations and learning rate")
	}
	n, d, classes, err := checkFit(X, y)
	if err != nil {
		return err
	}

	lr.classes = classes
	lr.w = mat.NewDense(classes, d, nil)
	lr.b = make([]float64, classes)

	// The gradient of the mean cross entropy is Lipschitz with constant (max|x|²+1)/2.
	var (
		buf     = make([]float64, d)
		maxNorm float64
	)
	for i := 0; i < n; i++ {
		x := dataset.Row(X, i, buf)
		if norm := floats.Dot(x, x); norm > maxNorm {
			maxNorm = norm
		}
	}

	var (
		lambda = 1 / (lr.C * float64(n))
		step   = lr.LearningRate * 2 / (maxNorm + 1)
		gw     = mat.NewDense(classes, d, nil)
		gb     = make([]float64, classes)
		p      = make([]float64, classes)
	)
	for it := 0; it < lr.Iterations; it++ {
		gw.Zero()
		for k := range gb {
			gb[k] = 0
		}
		for i := 0; i < n; i++ {
			x := dataset.Row(X, i, buf)
			lr.softmax(x, p)
			p[y[i]]--
			for k, g := range p {
				if g == 0 {
					continue
				}
				floats.AddScaled(gw.RawRowView(k), g/float64(n), x)
				gb[k] += g / float64(n)
			}
		}

		for k := 0; k < classes; k++ {
			w := lr.w.RawRowView(k)
			g := gw.RawRowView(k)
			switch lr.Penalty {
			case L1:
				floats.AddScaled(w, -step, g)
				// Soft thresholding is the proximal operator of the L1 norm.
				t := step * lambda
				for j, v := range w {
					switch {
					case v > t:
						w[j] = v - t
					case v < -t:
						w[j] = v + t
					default:
						w[j] = 0
					}
				}
			default:
				floats.AddScaled(w, -step, g)
				// Proximal step of the squared L2 norm, stable for any lambda.
				floats.Scale(1/(1+step*lambda), w)
			}
			lr.b[k] -= step * gb[k]
		}
	}
	return nil
}

// PredictProba implements Classifier.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if lr.w == nil {
		return nil, ErrNotFitted
	}
	n, d := X.Dims()
	if _, features := lr.w.Dims(); d != features {
		return nil, errors.Errorf("classifier was fit with %d features, got %d", features, d)
	}
	out := mat.NewDense(n, lr.classes, nil)
	buf := make([]float64, d)
	for i := 0; i < n; i++ {
		lr.softmax(dataset.Row(X, i, buf), out.RawRowView(i))
	}
	return out, nil
}

// Predict implements Classifier.
func (lr *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	return predict(lr, X)
}
