// Package eval measures how well a committee's predictions match the true labels of a test set.
package eval

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Evaluator is an interface for scoring predicted class labels against the true labels.
type Evaluator interface {
	Score(predicted, truth []int) float64
	Name() string
}

type accuracyEvaluator struct{}
type errorRateEvaluator struct{}
type macroF1Evaluator struct{}

var (
	// Accuracy is the fraction of rows predicted correctly.
	Accuracy = accuracyEvaluator{}
	// ErrorRate is the fraction of rows predicted incorrectly.
	ErrorRate = errorRateEvaluator{}
	// MacroF1 is the unweighted mean of the per-class F1 scores of the classes that occur in either
	// the predictions or the truth.
	MacroF1 = macroF1Evaluator{}
)

// Correct counts the rows where the prediction matches the truth.
func Correct(predicted, truth []int) int {
	var n int
	for i := range truth {
		if i < len(predicted) && predicted[i] == truth[i] {
			n++
		}
	}
	return n
}

func (accuracyEvaluator) Name() string {
	return "Accuracy"
}

func (accuracyEvaluator) Score(predicted, truth []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	return float64(Correct(predicted, truth)) / float64(len(truth))
}

func (errorRateEvaluator) Name() string {
	return "ErrorRate"
}

func (errorRateEvaluator) Score(predicted, truth []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	return 1 - Accuracy.Score(predicted, truth)
}

func (macroF1Evaluator) Name() string {
	return "MacroF1"
}

func (macroF1Evaluator) Score(predicted, truth []int) float64 {
	tp := make(map[int]float64)
	fp := make(map[int]float64)
	fn := make(map[int]float64)
	classes := make(map[int]struct{})
	for i, t := range truth {
		classes[t] = struct{}{}
		if i >= len(predicted) {
			fn[t]++
			continue
		}
		p := predicted[i]
		classes[p] = struct{}{}
		if p == t {
			tp[t]++
		} else {
			fp[p]++
			fn[t]++
		}
	}
	if len(classes) == 0 {
		return 0
	}

	keys := make([]int, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var sum float64
	for _, k := range keys {
		d := 2*tp[k] + fp[k] + fn[k]
		if d > 0 {
			sum += 2 * tp[k] / d
		}
	}
	return sum / float64(len(classes))
}

// Evaluate scores predictions using the supplied evaluators.
func Evaluate(evaluators []Evaluator, predicted, truth []int) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, e := range evaluators {
		scores[e.Name()] = e.Score(predicted, truth)
	}
	return scores
}

// ByName finds an evaluator by its (case insensitive) name.
func ByName(name string) (Evaluator, error) {
	for _, e := range []Evaluator{Accuracy, ErrorRate, MacroF1} {
		if strings.EqualFold(e.Name(), name) {
			return e, nil
		}
	}
	return nil, errors.Errorf("unknown evaluation measure %q", name)
}
