// Package output provides different formats of output for experiments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hscells/activelearn"
	"gonum.org/v1/gonum/stat"
)

// Formatter formats the learning curve of a strategy. These methods assume every trial of the curve
// has the same length.
type Formatter func(c activelearn.Curve) (string, error)

// TSVFormatter outputs the strategy name on the first line followed by one line per training set
// size: the size and then the accuracy of every trial, separated by tabs.
func TSVFormatter(c activelearn.Curve) (string, error) {
	var b strings.Builder
	b.WriteString(c.Strategy)
	b.WriteString("\n")
	for i := 0; i < c.Len(); i++ {
		fmt.Fprintf(&b, "%d", c.Size(i))
		for _, v := range c.At(i) {
			fmt.Fprintf(&b, "\t%f", v)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// SummaryFormatter outputs the mean and standard deviation across trials of every training set size.
func SummaryFormatter(c activelearn.Curve) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.Strategy)
	for i := 0; i < c.Len(); i++ {
		mean, std := stat.MeanStdDev(c.At(i), nil)
		if len(c.Trials) < 2 {
			std = 0
		}
		fmt.Fprintf(&b, "%d\t%f\t%f\n", c.Size(i), mean, std)
	}
	return b.String(), nil
}

// CsvFormatter outputs the curve in CSV format with a header row naming each trial.
func CsvFormatter(c activelearn.Curve) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	h := []string{"Size"}
	for t := range c.Trials {
		h = append(h, fmt.Sprintf("Trial%d", t))
	}
	if err := w.Write(h); err != nil {
		return "", err
	}
	for i := 0; i < c.Len(); i++ {
		record := []string{strconv.Itoa(c.Size(i))}
		for _, v := range c.At(i) {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// JsonFormatter outputs the curve, including the query order of every trial, in a JSON format.
func JsonFormatter(c activelearn.Curve) (string, error) {
	v, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Formatters maps the names of formats to their formatters and file extensions.
var Formatters = map[string]struct {
	Formatter Formatter
	Extension string
}{
	"tsv":     {TSVFormatter, "txt"},
	"summary": {SummaryFormatter, "summary.txt"},
	"csv":     {CsvFormatter, "csv"},
	"json":    {JsonFormatter, "json"},
}
