// Package feature splits a processed dataset into modeling inputs.
package feature

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/frame"
	"github.com/workline/absenteeism/internal/schema"
)

// Set is a processed dataset ready for training: a dense feature matrix in
// column order, the target vector, and the categorical/numeric partition.
type Set struct {
	Columns     []string
	Categorical []string
	Numeric     []string
	X           [][]float64
	Y           []float64
}

// Prepare drops duplicate rows, separates the target column and classifies
// the remaining columns. The fixed categorical set is treated as categorical
// regardless of its integer encoding. A missing target is fatal.
func Prepare(f *frame.Frame, target string) (*Set, error) {
	if !f.Has(target) {
		return nil, fmt.Errorf("target column '%s' not found in data", target)
	}
	f = f.Copy()
	if err := f.DropDuplicateRows(); err != nil {
		return nil, fmt.Errorf("could not drop duplicates: %w", err)
	}

	isCategorical := make(map[string]bool, len(schema.ModelCategorical))
	for _, name := range schema.ModelCategorical {
		isCategorical[name] = true
	}

	set := &Set{}
	for _, name := range f.Names() {
		if name == target {
			continue
		}
		set.Columns = append(set.Columns, name)
		if isCategorical[name] {
			set.Categorical = append(set.Categorical, name)
		} else {
			set.Numeric = append(set.Numeric, name)
		}
	}

	targetCol, err := f.Column(target)
	if err != nil {
		return nil, err
	}
	set.Y = append([]float64(nil), targetCol.Vals...)

	set.X = make([][]float64, f.Rows())
	for i := range set.X {
		set.X[i] = make([]float64, len(set.Columns))
	}
	for j, name := range set.Columns {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		for i, v := range col.Vals {
			set.X[i][j] = v
		}
	}

	log.Info().Int("rows", len(set.Y)).
		Int("numeric", len(set.Numeric)).
		Int("categorical", len(set.Categorical)).
		Msg("prepared features")
	return set, nil
}

// Record converts a single named record into a feature row in the set's
// column order. Unknown columns in the record are rejected.
func (s *Set) Record(values map[string]float64) ([]float64, error) {
	index := make(map[string]int, len(s.Columns))
	for j, name := range s.Columns {
		index[name] = j
	}
	row := make([]float64, len(s.Columns))
	seen := 0
	for name, v := range values {
		j, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("unexpected column '%s'", name)
		}
		row[j] = v
		seen++
	}
	if seen != len(s.Columns) {
		return nil, fmt.Errorf("record has %d of %d required columns", seen, len(s.Columns))
	}
	return row, nil
}

// Default returns the modeling column partition for the 19-feature schema,
// used when a loaded artifact needs the canonical order without a dataset.
func Default() *Set {
	set := &Set{Columns: append([]string(nil), schema.FeatureColumns...)}
	isCategorical := make(map[string]bool, len(schema.ModelCategorical))
	for _, name := range schema.ModelCategorical {
		isCategorical[name] = true
	}
	for _, name := range set.Columns {
		if isCategorical[name] {
			set.Categorical = append(set.Categorical, name)
		} else {
			set.Numeric = append(set.Numeric, name)
		}
	}
	return set
}
