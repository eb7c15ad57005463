// Package preprocess implements the shared modeling transform: numeric
// standardization plus one-hot encoding of the categorical columns. The
// transform is an explicit fit-then-apply pair so fitted state can be
// persisted with the model artifact and restored exactly.
package preprocess

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Transformer scales numeric columns to zero mean and unit variance and
// expands categorical columns into one-hot blocks. Categories are the ones
// observed during fit; unknown categories at inference map to an all-zero
// block rather than failing.
type Transformer struct {
	Columns     []string             `json:"columns"`
	Numeric     []string             `json:"numeric"`
	Categorical []string             `json:"categorical"`
	Means       map[string]float64   `json:"means"`
	Scales      map[string]float64   `json:"scales"`
	Categories  map[string][]float64 `json:"categories"`

	fitted bool
}

// New creates an unfitted transformer over the given column partition.
// Columns is the order of incoming feature rows.
func New(columns, numeric, categorical []string) *Transformer {
	return &Transformer{
		Columns:     append([]string(nil), columns...),
		Numeric:     append([]string(nil), numeric...),
		Categorical: append([]string(nil), categorical...),
	}
}

// Fit computes column means, scales and category sets from the training
// rows. A constant column gets scale 1 so it maps to zero instead of NaN.
func (t *Transformer) Fit(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("cannot fit on an empty training split")
	}
	index, err := t.index()
	if err != nil {
		return err
	}
	t.Means = make(map[string]float64, len(t.Numeric))
	t.Scales = make(map[string]float64, len(t.Numeric))
	for _, name := range t.Numeric {
		col := column(x, index[name])
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || len(col) < 2 {
			std = 1
		}
		t.Means[name] = mean
		t.Scales[name] = std
	}
	t.Categories = make(map[string][]float64, len(t.Categorical))
	for _, name := range t.Categorical {
		seen := make(map[float64]struct{})
		for _, row := range x {
			seen[row[index[name]]] = struct{}{}
		}
		cats := make([]float64, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Float64s(cats)
		t.Categories[name] = cats
	}
	t.fitted = true
	return nil
}

// Restore marks a transformer deserialized from an artifact as fitted.
func (t *Transformer) Restore() error {
	if t.Means == nil || t.Scales == nil || t.Categories == nil {
		return fmt.Errorf("transformer state is incomplete")
	}
	t.fitted = true
	return nil
}

// Width returns the number of output features.
func (t *Transformer) Width() int {
	w := len(t.Numeric)
	for _, name := range t.Categorical {
		w += len(t.Categories[name])
	}
	return w
}

// FeatureNames returns the expanded output feature names in order.
func (t *Transformer) FeatureNames() []string {
	names := make([]string, 0, t.Width())
	names = append(names, t.Numeric...)
	for _, name := range t.Categorical {
		for _, cat := range t.Categories[name] {
			names = append(names, fmt.Sprintf("%s=%v", name, cat))
		}
	}
	return names
}

// Transform maps feature rows into the scaled, one-hot encoded space.
func (t *Transformer) Transform(x [][]float64) ([][]float64, error) {
	if !t.fitted {
		return nil, fmt.Errorf("transformer is not fitted")
	}
	index, err := t.index()
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("row has %d features, expected %d", len(row), len(t.Columns))
		}
		enc := make([]float64, 0, t.Width())
		for _, name := range t.Numeric {
			enc = append(enc, (row[index[name]]-t.Means[name])/t.Scales[name])
		}
		for _, name := range t.Categorical {
			v := row[index[name]]
			for _, cat := range t.Categories[name] {
				if v == cat {
					enc = append(enc, 1)
				} else {
					enc = append(enc, 0)
				}
			}
		}
		out[i] = enc
	}
	return out, nil
}

func (t *Transformer) index() (map[string]int, error) {
	index := make(map[string]int, len(t.Columns))
	for j, name := range t.Columns {
		index[name] = j
	}
	for _, name := range append(append([]string(nil), t.Numeric...), t.Categorical...) {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("column '%s' not present in feature order", name)
		}
	}
	return index, nil
}

func column(x [][]float64, j int) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = row[j]
	}
	return out
}
