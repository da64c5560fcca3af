package activelearn

// ResultType is the type of result being returned through an experiment channel.
type ResultType uint8

const (
	// CurveResult is the learning curve of one strategy.
	CurveResult ResultType = iota
	// Error indicates an error was raised.
	Error
	// Done indicates the experiment has completed.
	Done
)

// Result is the output of an experiment.
type Result struct {
	Curve Curve
	Type  ResultType
	Error error
}

// Curve holds every trial of a strategy. Trials[t][i] is the accuracy of trial t with SeedSize+i
// training rows; all trials have the same length.
type Curve struct {
	Strategy string
	SeedSize int
	Trials   [][]float64
	Queries  [][]int
}

// Len is the number of training set sizes the curve covers.
func (c Curve) Len() int {
	if len(c.Trials) == 0 {
		return 0
	}
	return len(c.Trials[0])
}

// Size is the training set size at position i of the curve.
func (c Curve) Size(i int) int {
	return c.SeedSize + i
}

// At returns the accuracy of every trial at position i of the curve.
func (c Curve) At(i int) []float64 {
	row := make([]float64, len(c.Trials))
	for t, trial := range c.Trials {
		row[t] = trial[i]
	}
	return row
}
