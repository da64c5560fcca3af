package output_test

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hscells/activelearn"
	"github.com/hscells/activelearn/output"
)

var curve = activelearn.Curve{
	Strategy: "average-KL",
	SeedSize: 20,
	Trials: [][]float64{
		{0.25, 0.5, 0.75},
		{0.75, 0.5, 0.25},
	},
	Queries: [][]int{{3, 1}, {2, 4}},
}

func TestTSVFormatter(t *testing.T) {
	s, err := output.TSVFormatter(curve)
	if err != nil {
		t.Fatal(err)
	}
	want := "average-KL\n20\t0.250000\t0.750000\n21\t0.500000\t0.500000\n22\t0.750000\t0.250000\n"
	if s != want {
		t.Errorf("expected\n%q\ngot\n%q", want, s)
	}
}

func TestSummaryFormatter(t *testing.T) {
	s, err := output.SummaryFormatter(curve)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[2] != "21\t0.500000\t0.000000" {
		t.Errorf("unexpected summary line %q", lines[2])
	}
	if !strings.HasPrefix(lines[1], "20\t0.500000\t0.353553") {
		t.Errorf("unexpected summary line %q", lines[1])
	}
}

func TestCsvFormatter(t *testing.T) {
	s, err := output.CsvFormatter(curve)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s, "Size,Trial0,Trial1\n20,0.25,0.75\n") {
		t.Errorf("unexpected csv %q", s)
	}
}

func TestWriteCurve(t *testing.T) {
	dir, err := ioutil.TempDir("", "output")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	files, err := output.WriteCurve(dir, curve, "tsv", "json")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "output_qbc_average-KL.txt" {
		t.Fatalf("unexpected files %v", files)
	}

	b, err := ioutil.ReadFile(files[1])
	if err != nil {
		t.Fatal(err)
	}
	var c activelearn.Curve
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatal(err)
	}
	if c.Queries[1][0] != 2 {
		t.Errorf("expected the query order to be kept, got %v", c.Queries)
	}

	if _, err := output.WriteCurve(dir, curve, "xml"); err == nil {
		t.Error("expected an unknown format to fail")
	}

	m := output.NewManifest(map[string]interface{}{"trials": 2})
	m.Add(files...)
	p, err := m.Write(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, m.RunID) {
		t.Errorf("expected the manifest name to contain the run id, got %s", p)
	}
}

func TestJsonFormatter(t *testing.T) {
	s, err := output.JsonFormatter(curve)
	if err != nil {
		t.Fatal(err)
	}
	var c activelearn.Curve
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, curve) {
		t.Errorf("expected %v, got %v", curve, c)
	}
}

func TestManifest(t *testing.T) {
	dir, err := ioutil.TempDir("", "manifest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	m := output.NewManifest(map[string]interface{}{"trials": 2, "measure": "Accuracy"})
	m.Add("b.txt", "a.txt")
	p, err := m.Write(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p) != "manifest_"+m.RunID+".json" {
		t.Errorf("unexpected manifest name %s", p)
	}

	b, err := ioutil.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	var read output.Manifest
	if err := json.Unmarshal(b, &read); err != nil {
		t.Fatal(err)
	}
	if read.RunID != m.RunID || len(read.RunID) != 36 {
		t.Errorf("expected run id %s, got %s", m.RunID, read.RunID)
	}
	if !reflect.DeepEqual(read.Files, []string{"a.txt", "b.txt"}) {
		t.Errorf("expected sorted files, got %v", read.Files)
	}
	if read.Settings["trials"] != 2.0 || read.Settings["measure"] != "Accuracy" {
		t.Errorf("unexpected settings %v", read.Settings)
	}
	if !read.Created.Equal(m.Created) {
		t.Errorf("expected creation time %s, got %s", m.Created, read.Created)
	}
}
