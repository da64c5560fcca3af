// Package learning runs a single active learning trial: starting from a seed training set it
// repeatedly moves the most informative pool row into the training set, retrains a committee and
// records how well it classifies a held out test set.
package learning

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// Partition splits the rows [0, n) of a pool dataset into a training set and the remaining pool.
// Train is in the order rows were added; Pool keeps the order rows were created in.
type Partition struct {
	n     int
	Train []int
	Pool  []int
}

// NewPartition creates a partition of n rows where the seed rows are the training set.
func NewPartition(n int, seed []int) (*Partition, error) {
	in := make([]bool, n)
	for _, i := range seed {
		if i < 0 || i >= n {
			return nil, errors.Errorf("seed row %d is outside [0, %d)", i, n)
		}
		if in[i] {
			return nil, errors.Errorf("seed row %d appears twice", i)
		}
		in[i] = true
	}
	p := &Partition{
		n:     n,
		Train: append(make([]int, 0, n), seed...),
		Pool:  make([]int, 0, n-len(seed)),
	}
	for i := 0; i < n; i++ {
		if !in[i] {
			p.Pool = append(p.Pool, i)
		}
	}
	return p, nil
}

// Len is the number of rows being partitioned.
func (p *Partition) Len() int {
	return p.n
}

// Move moves the row at position pos of the pool to the end of the training set and returns it.
func (p *Partition) Move(pos int) (int, error) {
	if pos < 0 || pos >= len(p.Pool) {
		return 0, errors.Errorf("pool position %d is outside a pool of %d", pos, len(p.Pool))
	}
	row := p.Pool[pos]
	p.Train = append(p.Train, row)
	p.Pool = append(p.Pool[:pos], p.Pool[pos+1:]...)
	return row, nil
}

// sortedUnique returns a sorted copy of rows and whether every row in it is distinct and in [0, n).
func sortedUnique(rows []int, n int) ([]int, bool) {
	s := append([]int(nil), rows...)
	sort.Ints(s)
	for _, r := range s {
		if r < 0 || r >= n {
			return s, false
		}
	}
	return s, set.Uniq(sort.IntSlice(s)) == len(s)
}

// Validate checks that the training set and the pool are disjoint and together cover every row.
func (p *Partition) Validate() error {
	train, ok := sortedUnique(p.Train, p.n)
	if !ok {
		return errors.New("training set has duplicate or out of range rows")
	}
	pool, ok := sortedUnique(p.Pool, p.n)
	if !ok {
		return errors.New("pool has duplicate or out of range rows")
	}

	inter := append(append(make([]int, 0, p.n), train...), pool...)
	if size := set.Inter(sort.IntSlice(inter), len(train)); size != 0 {
		return errors.Errorf("training set and pool share %d rows", size)
	}
	union := append(append(make([]int, 0, p.n), train...), pool...)
	if size := set.Union(sort.IntSlice(union), len(train)); size != p.n {
		return errors.Errorf("training set and pool cover %d of %d rows", size, p.n)
	}
	return nil
}

// Seed draws one row of every class uniformly at random, so that every class is represented in the
// training set from the first iteration.
func Seed(y []int, classes int, rng *rand.Rand) ([]int, error) {
	rows := make([][]int, classes)
	for i, k := range y {
		if k < 0 || k >= classes {
			return nil, errors.Errorf("label %d of row %d is outside [0, %d)", k, i, classes)
		}
		rows[k] = append(rows[k], i)
	}
	seed := make([]int, classes)
	for k, r := range rows {
		if len(r) == 0 {
			return nil, errors.Errorf("class %d has no rows to seed from", k)
		}
		seed[k] = r[rng.Intn(len(r))]
	}
	return seed, nil
}
