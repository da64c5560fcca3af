package dataset_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/activelearn/dataset"
	"gonum.org/v1/gonum/mat"
)

const pool = `1 1:1 3:2
2 2:1.5 # a comment
10 1:1 4:1
1 qid:3 2:2
`

const test = `2 1:1
3 3:1
`

func TestReadSVMLight(t *testing.T) {
	d, err := dataset.ReadSVMLight(strings.NewReader(pool), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 4 || d.Dims() != 4 {
		t.Fatalf("expected 4x4 dataset, got %dx%d", d.Len(), d.Dims())
	}
	if d.Classes != 3 {
		t.Fatalf("expected 3 classes, got %d", d.Classes)
	}
	// Labels are ordered numerically, so 10 comes after 2.
	want := []int{0, 1, 2, 0}
	for i, y := range want {
		if d.Y[i] != y {
			t.Errorf("row %d: expected label %d, got %d", i, y, d.Y[i])
		}
	}
	if d.Names[2] != "10" {
		t.Errorf("expected class 2 to be named 10, got %s", d.Names[2])
	}
	if d.X.At(0, 2) != 2 || d.X.At(1, 1) != 1.5 || d.X.At(3, 1) != 2 {
		t.Errorf("unexpected features %v", mat.Formatted(d.X))
	}
}

func TestReadSVMLightFolded(t *testing.T) {
	d, err := dataset.ReadSVMLight(strings.NewReader(pool), 2)
	if err != nil {
		t.Fatal(err)
	}
	// Index 3 folds onto index 1 and index 4 onto index 2.
	if d.X.At(0, 0) != 3 {
		t.Errorf("expected folded value 3, got %f", d.X.At(0, 0))
	}
	if d.X.At(2, 1) != 1 {
		t.Errorf("expected folded value 1, got %f", d.X.At(2, 1))
	}
}

func TestReadSVMLightMalformed(t *testing.T) {
	if _, err := dataset.ReadSVMLight(strings.NewReader("1 1-2\n"), 0); err == nil {
		t.Fatal("expected an error for a malformed feature")
	}
	if _, err := dataset.ReadSVMLight(strings.NewReader(""), 3); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestReadSVMLightPair(t *testing.T) {
	p, q, err := dataset.ReadSVMLightPair(strings.NewReader(pool), strings.NewReader(test), 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Classes != 4 || q.Classes != 4 {
		t.Fatalf("expected the label space to be shared, got %d and %d", p.Classes, q.Classes)
	}
	if q.Y[0] != p.Y[1] {
		t.Errorf("label 2 mapped to %d in the pool and %d in the test set", p.Y[1], q.Y[0])
	}
	if p.Dims() != q.Dims() {
		t.Errorf("expected a shared feature space, got %d and %d", p.Dims(), q.Dims())
	}
}

func TestRows(t *testing.T) {
	d := dataset.Dataset{
		X:       mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
		Y:       []int{0, 1, 0},
		Classes: 2,
	}
	r := d.Rows([]int{2, 0})
	if n, c := r.Dims(); n != 2 || c != 2 {
		t.Fatalf("expected 2x2 view, got %dx%d", n, c)
	}
	if r.At(0, 1) != 6 || r.At(1, 0) != 1 {
		t.Errorf("unexpected view %v", mat.Formatted(r))
	}
	if r.T().At(1, 0) != 6 {
		t.Errorf("unexpected transpose")
	}

	// Views share the memory of the dataset.
	d.X.Set(2, 0, 9)
	if dataset.Row(r, 0, nil)[0] != 9 {
		t.Errorf("expected the view to see the update")
	}
	if y := d.Labels([]int{2, 1}); y[0] != 0 || y[1] != 1 {
		t.Errorf("unexpected labels %v", y)
	}
}

func TestVectorizePair(t *testing.T) {
	dir, err := ioutil.TempDir("", "corpus")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	files := map[string]string{
		"train/rec.autos/1":   "The engines of these cars are running",
		"train/sci.space/1":   "Rockets orbiting the moon",
		"train/sci.space/2":   "The orbit of the rocket",
		"test/rec.autos/1":    "A car engine",
		"test/talk.politics/1": "An election",
	}
	for name, text := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(p, []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}

	p, q, err := dataset.VectorizePair(filepath.Join(dir, "train"), filepath.Join(dir, "test"), 64)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 3 || q.Len() != 2 {
		t.Fatalf("expected 3 and 2 documents, got %d and %d", p.Len(), q.Len())
	}
	if p.Classes != 3 || p.Names[2] != "talk.politics" {
		t.Fatalf("unexpected classes %v", p.Names)
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if mat.Sum(p.X) == 0 {
		t.Errorf("expected some terms to survive")
	}
}

func TestTokenise(t *testing.T) {
	terms := dataset.Tokenise("Running the engines")
	for _, term := range terms {
		if term == "the" {
			t.Errorf("expected stopwords to be removed, got %v", terms)
		}
	}
	if len(terms) != 2 || terms[0] != "run" {
		t.Errorf("unexpected terms %v", terms)
	}
}

func TestCache(t *testing.T) {
	dir, err := ioutil.TempDir("", "cache")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	c, err := dataset.NewCache(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	key := dataset.Key("pool", "test", "2")
	if _, err := c.Get(key); err != dataset.ErrCacheMiss {
		t.Fatalf("expected a cache miss, got %v", err)
	}

	d := dataset.Dataset{
		X:       mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		Y:       []int{1, 0},
		Classes: 2,
		Names:   []string{"a", "b"},
	}
	if err := c.Set(key, d); err != nil {
		t.Fatal(err)
	}

	// A second cache over the same directory only has the disk copy.
	c2, err := dataset.NewCache(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c2.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(got.X, d.X) || got.Y[0] != 1 || got.Names[1] != "b" {
		t.Errorf("cached dataset differs: %v", got)
	}
}
