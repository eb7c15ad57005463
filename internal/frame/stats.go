package frame

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrNoColumn = errors.New("no such column")
	ErrAllNaN   = errors.New("no observed values")
)

// present returns the non-missing values of the column.
func (c *Column) present() []float64 {
	out := make([]float64, 0, len(c.Vals))
	for _, v := range c.Vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Quantile computes the p-quantile of the observed values with linear
// interpolation between order statistics, so bounds line up with the usual
// dataframe conventions. Missing values are skipped.
func (c *Column) Quantile(p float64) (float64, error) {
	vals := c.present()
	if len(vals) == 0 {
		return 0, ErrAllNaN
	}
	sort.Float64s(vals)
	if len(vals) == 1 {
		return vals[0], nil
	}
	h := p * float64(len(vals)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return vals[lo], nil
	}
	return vals[lo] + (h-float64(lo))*(vals[hi]-vals[lo]), nil
}

// Median is the 0.5 quantile of the observed values.
func (c *Column) Median() (float64, error) {
	return c.Quantile(0.5)
}

// Mode returns the most frequent value among observed values accepted by
// keep. Ties resolve to the smallest value, which keeps repair output
// stable across runs. Returns ErrAllNaN when nothing qualifies.
func (c *Column) Mode(keep func(float64) bool) (float64, error) {
	counts := make(map[float64]int)
	for _, v := range c.Vals {
		if math.IsNaN(v) {
			continue
		}
		if keep != nil && !keep(v) {
			continue
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return 0, ErrAllNaN
	}
	best := math.NaN()
	bestCount := -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best = v
			bestCount = n
		}
	}
	return best, nil
}

// Clip bounds every observed value to [lo, hi].
func (c *Column) Clip(lo, hi float64) {
	for i, v := range c.Vals {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			c.Vals[i] = lo
		} else if v > hi {
			c.Vals[i] = hi
		}
	}
}

// MissingCount returns the number of missing values in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Vals {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
