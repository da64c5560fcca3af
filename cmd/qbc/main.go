package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/activelearn"
	"github.com/hscells/activelearn/classifier"
	"github.com/hscells/activelearn/dataset"
	"github.com/hscells/activelearn/eval"
	"github.com/hscells/activelearn/output"
	"github.com/hscells/activelearn/selection"
)

var (
	name    = "qbc"
	version = "17.Oct.2026"
	author  = "activelearn contributors"
)

type args struct {
	NB  float64 `help:"add a multinomial naive Bayes member with this smoothing alpha" arg:"--nb"`
	LR1 float64 `help:"add an L1 logistic regression member with this inverse regularisation C" arg:"--lr1"`
	LR2 float64 `help:"add an L2 logistic regression member with this inverse regularisation C" arg:"--lr2"`

	MaxTrain   int      `help:"training set size each trial stops at" arg:"-n"`
	Trials     int      `help:"number of trials per strategy" arg:"-N"`
	Beta       float64  `help:"density exponent, zero disables density weighting" arg:"-b"`
	Strategies []string `help:"selection strategies to compare (random, vote-disagreement, vote-agreement, average-KL)"`
	Measure    string   `help:"evaluation measure of the learning curves (Accuracy, ErrorRate, MacroF1)"`

	Train string `help:"pool: svmlight file, URL, or directory of class directories of text"`
	Test  string `help:"test set: svmlight file, URL, or directory of class directories of text"`
	Dims  int    `help:"number of feature columns, zero keeps svmlight indices"`
	Cache string `help:"directory for downloads and the dataset cache"`

	Out     string   `help:"directory the curves are written to" arg:"-o"`
	Formats []string `help:"output formats (tsv, summary, csv, json)"`

	Workers  int           `help:"concurrent trials, zero for one per CPU" arg:"-w"`
	Seed     int64         `help:"seed of every random choice" arg:"-s"`
	Timeout  time.Duration `help:"maximum duration of a single trial"`
	Config   string        `help:"properties file with qbc.* and dataset.* settings" arg:"-c"`
	Check    bool          `help:"check the partition invariant after every query"`
	Verbose  bool          `help:"log the accuracy after every query" arg:"-v"`
	Progress bool          `help:"display a progress bar of the trials"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
query-by-committee active learning experiments
@ %s
# %s`, name, author, version)
}

// defaults are the settings of an experiment without flags.
func defaults() args {
	cache := filepath.Join(os.TempDir(), "activelearn")
	if dir, err := os.UserCacheDir(); err == nil {
		cache = filepath.Join(dir, "activelearn")
	}
	return args{
		MaxTrain:   300,
		Trials:     100,
		Strategies: selection.Names(),
		Measure:    eval.Accuracy.Name(),
		Train:      dataset.News20URL,
		Test:       dataset.News20TestURL,
		Dims:       2048,
		Cache:      cache,
		Out:        ".",
		Formats:    []string{"tsv", "summary"},
	}
}

// kinds are the committee members, in the order lr1, lr2, nb. A zero parameter omits the member.
func (a args) kinds() []classifier.Kind {
	var k []classifier.Kind
	if a.LR1 > 0 {
		k = append(k, classifier.Kind{Name: fmt.Sprintf("lr1(C=%g)", a.LR1), Factory: classifier.NewLogisticRegression(classifier.L1, a.LR1)})
	}
	if a.LR2 > 0 {
		k = append(k, classifier.Kind{Name: fmt.Sprintf("lr2(C=%g)", a.LR2), Factory: classifier.NewLogisticRegression(classifier.L2, a.LR2)})
	}
	if a.NB > 0 {
		k = append(k, classifier.Kind{Name: fmt.Sprintf("nb(alpha=%g)", a.NB), Factory: classifier.NewMultinomialNB(a.NB)})
	}
	return k
}

func (a args) settings(k []classifier.Kind) map[string]interface{} {
	members := make([]string, len(k))
	for i, kind := range k {
		members[i] = kind.Name
	}
	return map[string]interface{}{
		"committee":  members,
		"max_train":  a.MaxTrain,
		"trials":     a.Trials,
		"beta":       a.Beta,
		"strategies": a.Strategies,
		"measure":    a.Measure,
		"train":      a.Train,
		"test":       a.Test,
		"dims":       a.Dims,
		"seed":       a.Seed,
	}
}

func run(a args) error {
	kinds := a.kinds()
	factories := make([]classifier.Factory, len(kinds))
	for i, k := range kinds {
		factories[i] = k.Factory
	}

	strategies := make([]selection.Strategy, len(a.Strategies))
	for i, s := range a.Strategies {
		var err error
		if strategies[i], err = selection.ByName(s); err != nil {
			return err
		}
	}
	evaluator, err := eval.ByName(a.Measure)
	if err != nil {
		return err
	}

	cache, err := dataset.NewCache(filepath.Join(a.Cache, "datasets"), 4)
	if err != nil {
		return err
	}
	pool, test, err := dataset.Load(dataset.Source{Pool: a.Train, Test: a.Test, Dims: a.Dims}, a.Cache, cache)
	if err != nil {
		return err
	}
	log.Printf("pool of %d rows, test of %d rows, %d features, %d classes\n", pool.Len(), test.Len(), pool.Dims(), pool.Classes)

	e := activelearn.NewExperiment(pool, test, factories,
		activelearn.Strategies(strategies...),
		activelearn.MaxTrain(a.MaxTrain),
		activelearn.Trials(a.Trials),
		activelearn.Beta(a.Beta),
		activelearn.Seed(a.Seed),
		activelearn.Workers(a.Workers),
	)
	e.Evaluator = evaluator
	e.TrialTimeout = a.Timeout
	e.Check = a.Check
	e.Verbose = a.Verbose
	e.Progress = a.Progress

	if err := os.MkdirAll(a.Out, 0755); err != nil {
		return err
	}
	manifest := output.NewManifest(a.settings(kinds))

	c := make(chan activelearn.Result)
	go e.Execute(context.Background(), c)
	for result := range c {
		switch result.Type {
		case activelearn.CurveResult:
			files, err := output.WriteCurve(a.Out, result.Curve, a.Formats...)
			if err != nil {
				return err
			}
			manifest.Add(files...)
			log.Printf("wrote %s\n", result.Curve.Strategy)
		case activelearn.Error:
			return result.Error
		case activelearn.Done:
			p, err := manifest.Write(a.Out)
			if err != nil {
				return err
			}
			log.Printf("experiment %s complete, see %s\n", manifest.RunID, p)
		}
	}
	return nil
}

func main() {
	a := defaults()
	arg.MustParse(&a)

	if len(a.Config) > 0 {
		if err := applyProperties(&a, a.Config); err != nil {
			log.Fatalln(errors.Wrap(err, 0).ErrorStack())
		}
	}

	if err := run(a); err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
}
