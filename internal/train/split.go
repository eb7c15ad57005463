package train

import (
	"fmt"
	"math"
	"math/rand"
)

// Split is a deterministic shuffled train/test partition of row indices.
type Split struct {
	Train []int
	Test  []int
}

// NewSplit shuffles [0,n) with the given seed and holds out testFraction of
// the rows. The same seed always yields the same partition.
func NewSplit(n int, testFraction float64, seed int64) (Split, error) {
	if n < 2 {
		return Split{}, fmt.Errorf("cannot split %d rows", n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return Split{}, fmt.Errorf("test fraction %v out of (0,1)", testFraction)
	}
	testSize := int(math.Ceil(float64(n) * testFraction))
	if testSize >= n {
		testSize = n - 1
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Split{
		Test:  perm[:testSize],
		Train: perm[testSize:],
	}, nil
}

// Take selects the given rows from a feature matrix.
func Take(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

// TakeVec selects the given rows from a target vector.
func TakeVec(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
