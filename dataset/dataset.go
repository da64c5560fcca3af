// Package dataset provides the labelled feature matrices that active learning experiments are run over,
// along with the readers, vectorizers and caches used to obtain them.
package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is an immutable feature matrix paired with a class label for every row. Labels are dense
// class indices in [0, Classes). Names maps a class index back to the label it was read as.
type Dataset struct {
	X       *mat.Dense
	Y       []int
	Classes int
	Names   []string
}

// Len is the number of samples in the dataset.
func (d Dataset) Len() int {
	return len(d.Y)
}

// Dims is the number of feature columns.
func (d Dataset) Dims() int {
	if d.X == nil {
		return 0
	}
	_, c := d.X.Dims()
	return c
}

// Validate checks that the features and labels describe the same samples.
func (d Dataset) Validate() error {
	if d.X == nil {
		return errors.New("dataset has no features")
	}
	r, _ := d.X.Dims()
	if r != len(d.Y) {
		return errors.Errorf("dataset has %d feature rows but %d labels", r, len(d.Y))
	}
	for i, y := range d.Y {
		if y < 0 || y >= d.Classes {
			return errors.Errorf("label %d of row %d is outside [0, %d)", y, i, d.Classes)
		}
	}
	return nil
}

// Rows creates a view over the rows at the given indices.
func (d Dataset) Rows(index []int) Rows {
	return Rows{X: d.X, Index: index}
}

// Labels returns the labels of the rows at the given indices.
func (d Dataset) Labels(index []int) []int {
	y := make([]int, len(index))
	for i, j := range index {
		y[i] = d.Y[j]
	}
	return y
}

// Rows is a read-only view of a subset of the rows of a matrix. Row i of the view is row Index[i]
// of X. The underlying matrix is never copied.
type Rows struct {
	X     *mat.Dense
	Index []int
}

// Dims implements mat.Matrix.
func (r Rows) Dims() (int, int) {
	_, c := r.X.Dims()
	return len(r.Index), c
}

// At implements mat.Matrix.
func (r Rows) At(i, j int) float64 {
	return r.X.At(r.Index[i], j)
}

// T implements mat.Matrix.
func (r Rows) T() mat.Matrix {
	return mat.Transpose{Matrix: r}
}

// RawRowView implements mat.RawRowViewer. The returned slice must not be modified.
func (r Rows) RawRowView(i int) []float64 {
	return r.X.RawRowView(r.Index[i])
}

// Row returns row i of m, avoiding a copy when m can expose its rows directly. dst is used as the
// destination of the copy otherwise, and may be nil.
func Row(m mat.Matrix, i int, dst []float64) []float64 {
	if rv, ok := m.(mat.RawRowViewer); ok {
		return rv.RawRowView(i)
	}
	return mat.Row(dst, i, m)
}
