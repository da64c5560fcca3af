package dataset

import (
	"hash/fnv"
	"io/ioutil"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/pkg/errors"
	"github.com/reiver/go-porterstemmer"
	"gonum.org/v1/gonum/mat"
)

// document is a tokenised text file and the name of the class directory it was found in.
type document struct {
	class string
	terms []string
}

// Tokenise cleans English stopwords from text, splits it on non-letters and stems what remains.
func Tokenise(text string) []string {
	clean := stopwords.CleanString(text, "en", false)
	words := strings.FieldsFunc(clean, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		terms = append(terms, porterstemmer.StemString(strings.ToLower(w)))
	}
	return terms
}

// readCorpus reads a directory laid out as <dir>/<class>/<document>, the layout of e.g. 20news-bydate.
func readCorpus(dir string) ([]document, error) {
	classes, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var docs []document
	for _, class := range classes {
		if !class.IsDir() {
			continue
		}
		files, err := ioutil.ReadDir(filepath.Join(dir, class.Name()))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			b, err := ioutil.ReadFile(filepath.Join(dir, class.Name(), file.Name()))
			if err != nil {
				return nil, err
			}
			docs = append(docs, document{class: class.Name(), terms: Tokenise(string(b))})
		}
	}
	if len(docs) == 0 {
		return nil, errors.Errorf("no documents found in %s", dir)
	}
	return docs, nil
}

// column hashes a term into one of dims feature columns.
func column(term string, dims int) int {
	h := fnv.New32a()
	h.Write([]byte(term))
	return int(h.Sum32() % uint32(dims))
}

func vectorize(docs []document, dims int, classes map[string]int, names []string) Dataset {
	x := mat.NewDense(len(docs), dims, nil)
	y := make([]int, len(docs))
	for i, doc := range docs {
		raw := x.RawRowView(i)
		for _, term := range doc.terms {
			raw[column(term, dims)]++
		}
		y[i] = classes[doc.class]
	}
	return Dataset{X: x, Y: y, Classes: len(names), Names: names}
}

// VectorizePair turns two text corpora into term-frequency datasets over a shared hashed feature
// space of dims columns. Classes are the union of the class directory names of both corpora.
func VectorizePair(poolDir, testDir string, dims int) (Dataset, Dataset, error) {
	if dims <= 0 {
		return Dataset{}, Dataset{}, errors.Errorf("invalid number of feature columns %d", dims)
	}
	pool, err := readCorpus(poolDir)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "reading pool corpus")
	}
	test, err := readCorpus(testDir)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "reading test corpus")
	}

	var rows []sparseRow
	for _, docs := range [][]document{pool, test} {
		for _, doc := range docs {
			rows = append(rows, sparseRow{label: doc.class})
		}
	}
	classes, names := labelIndex(rows)
	return vectorize(pool, dims, classes, names), vectorize(test, dims, classes, names), nil
}
