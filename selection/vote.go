package selection

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// VoteEntropy scores a row by the negative Shannon entropy of the committee's hard votes for it.
// Rows the committee agrees on score 0, the maximum; an evenly split committee scores lowest.
type VoteEntropy struct{}

// Score implements Scorer.
func (VoteEntropy) Score(c Committee, pool mat.Matrix) ([]float64, error) {
	votes, err := c.Votes(pool)
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return nil, errors.New("committee has no members")
	}
	m := float64(len(votes))
	n := len(votes[0])
	scores := make([]float64, n)
	var classes, counts []int
	for i := 0; i < n; i++ {
		// Counts are kept in order of first vote so the entropy sums in a fixed order.
		classes, counts = classes[:0], counts[:0]
		for _, v := range votes {
			j := 0
			for j < len(classes) && classes[j] != v[i] {
				j++
			}
			if j == len(classes) {
				classes = append(classes, v[i])
				counts = append(counts, 0)
			}
			counts[j]++
		}
		var h float64
		for _, count := range counts {
			p := float64(count) / m
			h -= p * math.Log(p)
		}
		scores[i] = -h
	}
	return scores, nil
}

// PairwiseAgreement scores a row by how many pairs of a three member committee vote for the same
// class: [m1=m2] + [m2=m3] + [m1=m3]. Full agreement scores 3, the maximum. For three members it orders
// rows like vote entropy does.
//
// All three pairs are counted, unlike the two-term form [m1=m2] + [m1=m3] that only compares against
// the first member; the two-term form scores a row where only m2 and m3 agree the same as a three way
// split.
type PairwiseAgreement struct{}

// Score implements Scorer.
func (PairwiseAgreement) Score(c Committee, pool mat.Matrix) ([]float64, error) {
	if c.Size() != 3 {
		return nil, errors.Errorf("pairwise agreement requires a committee of exactly 3, got %d", c.Size())
	}
	votes, err := c.Votes(pool)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(votes[0]))
	for i := range scores {
		a, b, d := votes[0][i], votes[1][i], votes[2][i]
		if a == b {
			scores[i]++
		}
		if b == d {
			scores[i]++
		}
		if a == d {
			scores[i]++
		}
	}
	return scores, nil
}
