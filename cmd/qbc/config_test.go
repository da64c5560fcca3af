package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const config = `
qbc.nb = 0.5
qbc.lr2 = 10
qbc.max_train = 50
qbc.trials = 5
qbc.strategies = random, average-KL
qbc.timeout = 2m
dataset.train = pool.svm
dataset.dims = 128
`

func TestApplyProperties(t *testing.T) {
	dir, err := ioutil.TempDir("", "qbc")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "qbc.properties")
	if err := ioutil.WriteFile(path, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	a := defaults()
	// Set on the command line.
	a.Trials = 7

	if err := applyProperties(&a, path); err != nil {
		t.Fatal(err)
	}
	if a.NB != 0.5 || a.LR2 != 10 || a.LR1 != 0 {
		t.Errorf("unexpected committee nb=%f lr1=%f lr2=%f", a.NB, a.LR1, a.LR2)
	}
	if a.MaxTrain != 50 {
		t.Errorf("expected max_train 50, got %d", a.MaxTrain)
	}
	if a.Trials != 7 {
		t.Errorf("expected the command line to win, got %d trials", a.Trials)
	}
	if !reflect.DeepEqual(a.Strategies, []string{"random", "average-KL"}) {
		t.Errorf("unexpected strategies %v", a.Strategies)
	}
	if a.Timeout != 2*time.Minute {
		t.Errorf("expected a timeout of 2m, got %s", a.Timeout)
	}
	if a.Train != "pool.svm" || a.Test != defaults().Test || a.Dims != 128 {
		t.Errorf("unexpected dataset %s %s %d", a.Train, a.Test, a.Dims)
	}

	kinds := a.kinds()
	if len(kinds) != 2 || kinds[0].Name != "lr2(C=10)" || kinds[1].Name != "nb(alpha=0.5)" {
		t.Errorf("unexpected committee %v", kinds)
	}
}

func TestApplyPropertiesMissing(t *testing.T) {
	a := defaults()
	if err := applyProperties(&a, filepath.Join(os.TempDir(), "does-not-exist.properties")); err == nil {
		t.Error("expected a missing configuration to fail")
	}
}
