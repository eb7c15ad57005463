package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Missing markers recognised in raw CSV cells.
const missingCell = "?"

// Column holds one column of the dataset. Cells start out as raw strings
// when read from CSV and become float64 values once coerced; NaN marks a
// missing value. A column is in exactly one of the two states.
type Column struct {
	Raw  []string
	Vals []float64
}

// Numeric reports whether the column has been coerced to values.
func (c *Column) Numeric() bool {
	return c.Vals != nil
}

// Frame is a column-oriented in-memory table. Cleaning stages transform a
// frame in sequence; batch statistics (mode, median, quantiles) always see
// the full column.
type Frame struct {
	names []string
	cols  map[string]*Column
	rows  int
}

// New creates an empty frame with no columns.
func New() *Frame {
	return &Frame{cols: make(map[string]*Column)}
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Rows returns the number of rows.
func (f *Frame) Rows() int {
	return f.rows
}

// Has reports whether the frame holds the named column.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("column '%s': %w", name, ErrNoColumn)
	}
	return c, nil
}

// AddRaw appends a string column. All columns must share the row count.
func (f *Frame) AddRaw(name string, cells []string) error {
	return f.add(name, &Column{Raw: cells}, len(cells))
}

// AddVals appends a numeric column.
func (f *Frame) AddVals(name string, vals []float64) error {
	return f.add(name, &Column{Vals: vals}, len(vals))
}

func (f *Frame) add(name string, col *Column, n int) error {
	if f.Has(name) {
		return fmt.Errorf("column '%s' already present", name)
	}
	if len(f.names) > 0 && n != f.rows {
		return fmt.Errorf("column '%s' has %d rows, frame has %d", name, n, f.rows)
	}
	f.names = append(f.names, name)
	f.cols[name] = col
	f.rows = n
	return nil
}

// Drop removes the named column. Missing columns are ignored so that
// cleaning tolerates inputs where an irrelevant column is already gone.
func (f *Frame) Drop(name string) {
	if !f.Has(name) {
		return
	}
	delete(f.cols, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := New()
	for _, name := range f.names {
		c := f.cols[name]
		if c.Numeric() {
			vals := make([]float64, len(c.Vals))
			copy(vals, c.Vals)
			_ = out.AddVals(name, vals)
		} else {
			raw := make([]string, len(c.Raw))
			copy(raw, c.Raw)
			_ = out.AddRaw(name, raw)
		}
	}
	return out
}

// Coerce converts the column to numeric values. Each raw cell is parsed as a
// float and rounded to the nearest integer; unparseable or missing cells
// become NaN. Already numeric columns are rounded in place the same way.
func (c *Column) Coerce() {
	if c.Numeric() {
		for i, v := range c.Vals {
			if !math.IsNaN(v) {
				c.Vals[i] = math.Round(v)
			}
		}
		return
	}
	vals := make([]float64, len(c.Raw))
	for i, cell := range c.Raw {
		if cell == "" || cell == missingCell {
			vals[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = math.Round(v)
	}
	c.Raw = nil
	c.Vals = vals
}

// CoerceAll converts every column to numeric values.
func (f *Frame) CoerceAll() {
	for _, name := range f.names {
		f.cols[name].Coerce()
	}
}

// DropDuplicateRows removes rows whose values repeat an earlier row exactly.
// All columns must be numeric.
func (f *Frame) DropDuplicateRows() error {
	for _, name := range f.names {
		if !f.cols[name].Numeric() {
			return fmt.Errorf("column '%s' is not numeric", name)
		}
	}
	seen := make(map[string]struct{}, f.rows)
	keep := make([]int, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		key := ""
		for _, name := range f.names {
			key += strconv.FormatFloat(f.cols[name].Vals[i], 'g', -1, 64) + "|"
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == f.rows {
		return nil
	}
	for _, name := range f.names {
		c := f.cols[name]
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = c.Vals[i]
		}
		c.Vals = vals
	}
	f.rows = len(keep)
	return nil
}

// ReadCSV loads a frame from a CSV file. Blank and '?' cells are kept as raw
// markers and become missing values on coercion.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open '%s': %w", path, err)
	}
	defer file.Close()
	f, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("rows", f.Rows()).Int("columns", len(f.names)).Msg("loaded dataset")
	return f, nil
}

// Read loads a frame from CSV content. The first record is the header.
func Read(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv input")
	}
	header := records[0]
	f := New()
	for j, name := range header {
		cells := make([]string, len(records)-1)
		for i, rec := range records[1:] {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		if err := f.AddRaw(name, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteCSV stores the frame as CSV with integer formatting. All columns
// must be numeric and free of missing values.
func (f *Frame) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create '%s': %w", path, err)
	}
	defer file.Close()
	if err := f.Write(file); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("rows", f.Rows()).Msg("saved dataset")
	return nil
}

// Write emits the frame as CSV.
func (f *Frame) Write(w io.Writer) error {
	for _, name := range f.names {
		c := f.cols[name]
		if !c.Numeric() {
			return fmt.Errorf("column '%s' is not numeric", name)
		}
		for _, v := range c.Vals {
			if math.IsNaN(v) {
				return fmt.Errorf("column '%s' still has missing values", name)
			}
		}
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(f.names); err != nil {
		return err
	}
	row := make([]string, len(f.names))
	for i := 0; i < f.rows; i++ {
		for j, name := range f.names {
			row[j] = strconv.FormatInt(int64(f.cols[name].Vals[i]), 10)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
