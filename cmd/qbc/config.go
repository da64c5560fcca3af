package main

import (
	"reflect"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// split a comma separated property value.
func split(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); len(v) > 0 {
			values = append(values, v)
		}
	}
	return values
}

// applyProperties fills the settings of a that are still at their defaults from a properties file.
// Settings given on the command line are never overridden.
//
//	qbc.nb, qbc.lr1, qbc.lr2, qbc.max_train, qbc.trials, qbc.beta, qbc.strategies, qbc.measure,
//	qbc.workers, qbc.seed, qbc.timeout, qbc.out, qbc.formats,
//	dataset.train, dataset.test, dataset.dims, dataset.cache
func applyProperties(a *args, path string) error {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return errors.Wrapf(err, "loading configuration %s", path)
	}
	d := defaults()

	if a.NB == d.NB {
		a.NB = p.GetFloat64("qbc.nb", a.NB)
	}
	if a.LR1 == d.LR1 {
		a.LR1 = p.GetFloat64("qbc.lr1", a.LR1)
	}
	if a.LR2 == d.LR2 {
		a.LR2 = p.GetFloat64("qbc.lr2", a.LR2)
	}
	if a.MaxTrain == d.MaxTrain {
		a.MaxTrain = p.GetInt("qbc.max_train", a.MaxTrain)
	}
	if a.Trials == d.Trials {
		a.Trials = p.GetInt("qbc.trials", a.Trials)
	}
	if a.Beta == d.Beta {
		a.Beta = p.GetFloat64("qbc.beta", a.Beta)
	}
	if reflect.DeepEqual(a.Strategies, d.Strategies) {
		if s, ok := p.Get("qbc.strategies"); ok {
			a.Strategies = split(s)
		}
	}
	if a.Measure == d.Measure {
		a.Measure = p.GetString("qbc.measure", a.Measure)
	}
	if a.Workers == d.Workers {
		a.Workers = p.GetInt("qbc.workers", a.Workers)
	}
	if a.Seed == d.Seed {
		a.Seed = p.GetInt64("qbc.seed", a.Seed)
	}
	if a.Timeout == d.Timeout {
		a.Timeout = p.GetParsedDuration("qbc.timeout", a.Timeout)
	}
	if a.Out == d.Out {
		a.Out = p.GetString("qbc.out", a.Out)
	}
	if reflect.DeepEqual(a.Formats, d.Formats) {
		if s, ok := p.Get("qbc.formats"); ok {
			a.Formats = split(s)
		}
	}

	if a.Train == d.Train {
		a.Train = p.GetString("dataset.train", a.Train)
	}
	if a.Test == d.Test {
		a.Test = p.GetString("dataset.test", a.Test)
	}
	if a.Dims == d.Dims {
		a.Dims = p.GetInt("dataset.dims", a.Dims)
	}
	if a.Cache == d.Cache {
		a.Cache = p.GetString("dataset.cache", a.Cache)
	}
	return nil
}
