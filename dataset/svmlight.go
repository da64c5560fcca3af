package dataset

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// sparseRow is a single line of an svmlight file before it is folded into a dense matrix.
type sparseRow struct {
	label string
	index []int
	value []float64
}

// readSparse reads svmlight/LIBSVM formatted lines (`label idx:val idx:val ... # comment`).
func readSparse(r io.Reader) ([]sparseRow, int, error) {
	var (
		rows     []sparseRow
		maxIndex int
		line     int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if c := strings.IndexByte(text, '#'); c >= 0 {
			text = text[:c]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		row := sparseRow{
			label: fields[0],
			index: make([]int, 0, len(fields)-1),
			value: make([]float64, 0, len(fields)-1),
		}
		for _, f := range fields[1:] {
			k := strings.IndexByte(f, ':')
			if k < 0 {
				return nil, 0, errors.Errorf("line %d: malformed feature %q", line, f)
			}
			if f[:k] == "qid" {
				continue
			}
			idx, err := strconv.Atoi(f[:k])
			if err != nil {
				return nil, 0, errors.Wrapf(err, "line %d: feature index", line)
			}
			if idx < 0 {
				return nil, 0, errors.Errorf("line %d: negative feature index %d", line, idx)
			}
			v, err := strconv.ParseFloat(f[k+1:], 64)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "line %d: feature value", line)
			}
			if idx > maxIndex {
				maxIndex = idx
			}
			row.index = append(row.index, idx)
			row.value = append(row.value, v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return rows, maxIndex, nil
}

// labelIndex assigns a dense class index to every label seen in any of the sets of rows. Labels that
// parse as numbers are ordered numerically, otherwise lexically.
func labelIndex(sets ...[]sparseRow) (map[string]int, []string) {
	seen := make(map[string]struct{})
	for _, rows := range sets {
		for _, row := range rows {
			seen[row.label] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for l := range seen {
		names = append(names, l)
	}
	sort.Slice(names, func(i, j int) bool {
		a, errA := strconv.ParseFloat(names[i], 64)
		b, errB := strconv.ParseFloat(names[j], 64)
		if errA == nil && errB == nil && a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	classes := make(map[string]int, len(names))
	for i, l := range names {
		classes[l] = i
	}
	return classes, names
}

// fold converts sparse rows into a dense dataset with dims columns. Feature indices are one-based in
// svmlight files; an index i lands in column (i-1) mod dims, so indices wider than dims are hashed
// together.
func fold(rows []sparseRow, dims int, classes map[string]int, names []string) (Dataset, error) {
	if len(rows) == 0 {
		return Dataset{}, errors.New("no rows to read")
	}
	if dims <= 0 {
		return Dataset{}, errors.Errorf("invalid number of feature columns %d", dims)
	}
	x := mat.NewDense(len(rows), dims, nil)
	y := make([]int, len(rows))
	for i, row := range rows {
		raw := x.RawRowView(i)
		for k, idx := range row.index {
			col := ((idx-1)%dims + dims) % dims
			raw[col] += row.value[k]
		}
		y[i] = classes[row.label]
	}
	return Dataset{X: x, Y: y, Classes: len(names), Names: names}, nil
}

// ReadSVMLight reads a single svmlight file. When dims is zero the width of the matrix is the largest
// feature index in the file.
func ReadSVMLight(r io.Reader, dims int) (Dataset, error) {
	rows, maxIndex, err := readSparse(r)
	if err != nil {
		return Dataset{}, err
	}
	if dims == 0 {
		dims = maxIndex
	}
	classes, names := labelIndex(rows)
	return fold(rows, dims, classes, names)
}

// ReadSVMLightPair reads a training pool and a test set that must share a feature space and a label
// mapping, e.g., LIBSVM's news20 and news20.t.
func ReadSVMLightPair(pool, test io.Reader, dims int) (Dataset, Dataset, error) {
	poolRows, poolMax, err := readSparse(pool)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "reading pool")
	}
	testRows, testMax, err := readSparse(test)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "reading test")
	}
	if dims == 0 {
		dims = poolMax
		if testMax > dims {
			dims = testMax
		}
	}
	classes, names := labelIndex(poolRows, testRows)
	p, err := fold(poolRows, dims, classes, names)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "pool")
	}
	t, err := fold(testRows, dims, classes, names)
	if err != nil {
		return Dataset{}, Dataset{}, errors.Wrap(err, "test")
	}
	return p, t, nil
}
