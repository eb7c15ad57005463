package clean

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/frame"
	"github.com/workline/absenteeism/internal/schema"
)

// dropColumns removes the row identifier and the known mixed-type column.
// Absence is tolerated; the raw exports do not always carry both.
func dropColumns(f *frame.Frame) error {
	f.Drop(schema.ID)
	f.Drop(schema.MixedTypeCol)
	return nil
}

// stripCells trims surrounding whitespace from every raw string cell.
// Columns already coerced to numbers are left alone.
func stripCells(f *frame.Frame) error {
	for _, name := range f.Names() {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		if col.Numeric() {
			continue
		}
		for i, cell := range col.Raw {
			col.Raw[i] = strings.TrimSpace(cell)
		}
	}
	return nil
}

// safeRound parses every cell as a float and rounds to the nearest integer.
// This is the single point where malformed input turns into an explicit
// missing value instead of an error.
func safeRound(f *frame.Frame) error {
	for _, name := range f.Names() {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		col.Coerce()
	}
	return nil
}

// fixInvalids replaces out-of-domain categorical codes with the column's
// in-domain mode. The mode is computed once over the whole batch before any
// substitution; a column with no in-domain values falls back to the schema
// default instead of failing.
func fixInvalids(f *frame.Frame) error {
	for _, name := range schema.CategoricalColumns {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		domain := schema.Domains[name]
		mode, err := col.Mode(domain.Contains)
		if errors.Is(err, frame.ErrAllNaN) {
			mode = float64(domain.Default)
			log.Warn().Str("column", name).Int("default", domain.Default).
				Msg("no in-domain values, using schema default")
		} else if err != nil {
			return err
		}
		repaired := 0
		for i, v := range col.Vals {
			if math.IsNaN(v) || domain.Contains(v) {
				continue
			}
			col.Vals[i] = mode
			repaired++
		}
		if repaired > 0 {
			log.Info().Str("column", name).Int("repaired", repaired).
				Float64("mode", mode).Msg("replaced out-of-domain codes")
		}
	}
	return nil
}

// winsorize clips the fixed outlier columns to [Q1-1.5*IQR, Q3+1.5*IQR].
// Bounds come from the batch before imputation so filled values cannot
// bias them. The target column is clipped too.
func winsorize(f *frame.Frame) error {
	for _, name := range schema.OutlierColumns {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		q1, err := col.Quantile(0.25)
		if err != nil {
			return fmt.Errorf("column '%s': %w", name, err)
		}
		q3, err := col.Quantile(0.75)
		if err != nil {
			return fmt.Errorf("column '%s': %w", name, err)
		}
		iqr := q3 - q1
		col.Clip(q1-1.5*iqr, q3+1.5*iqr)
	}
	return nil
}

// fillMedian imputes remaining missing values with the column median,
// computed over the batch after repair and clipping.
func fillMedian(f *frame.Frame) error {
	for _, name := range f.Names() {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		if col.MissingCount() == 0 {
			continue
		}
		median, err := col.Median()
		if err != nil {
			return fmt.Errorf("column '%s': %w", name, err)
		}
		filled := 0
		for i, v := range col.Vals {
			if math.IsNaN(v) {
				col.Vals[i] = median
				filled++
			}
		}
		log.Info().Str("column", name).Int("filled", filled).
			Float64("median", median).Msg("imputed missing values")
	}
	return nil
}

// finalInt rounds every column to the nearest integer. No fractional
// features survive into training.
func finalInt(f *frame.Frame) error {
	for _, name := range f.Names() {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		for i, v := range col.Vals {
			col.Vals[i] = math.Round(v)
		}
	}
	return nil
}
