// Package plot renders descriptive views of the processed dataset: terminal
// histograms for quick inspection and plot-spec JSON documents a charting
// frontend can consume. Plots are presentation only and never feed back
// into modeling.
package plot

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/frame"
)

// Spec is the serialized form of one plot.
type Spec struct {
	PlotType  string    `json:"plot_type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Series    []Series  `json:"series"`
	XLabel    string    `json:"x_axis_label"`
	YLabel    string    `json:"y_axis_label"`
}

// Series is one named data series of a plot. Labels, when present, name
// the x positions of a categorical series.
type Series struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Labels []string  `json:"labels,omitempty"`
}

// Histogram bins the column into equal-width buckets.
func Histogram(col *frame.Column, name string, bins int) (Spec, error) {
	lo, err := col.Quantile(0)
	if err != nil {
		return Spec{}, fmt.Errorf("column '%s': %w", name, err)
	}
	hi, err := col.Quantile(1)
	if err != nil {
		return Spec{}, fmt.Errorf("column '%s': %w", name, err)
	}
	if bins < 1 {
		bins = 10
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}
	counts := make([]float64, bins)
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}
	for _, v := range col.Vals {
		if math.IsNaN(v) {
			continue
		}
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		if b < 0 {
			b = 0
		}
		counts[b]++
	}
	return Spec{
		PlotType:  "histogram",
		Title:     fmt.Sprintf("Distribution of %s", name),
		Timestamp: time.Now().UTC(),
		Series:    []Series{{Name: name, Type: "histogram", X: centers, Y: counts}},
		XLabel:    name,
		YLabel:    "count",
	}, nil
}

// Bar counts the occurrences of each observed code and labels the
// buckets with the given lookup. Codes appear in ascending order.
func Bar(col *frame.Column, name string, label func(code int) string) (Spec, error) {
	counts := make(map[int]float64)
	for _, v := range col.Vals {
		if math.IsNaN(v) {
			continue
		}
		counts[int(v)]++
	}
	if len(counts) == 0 {
		return Spec{}, fmt.Errorf("column '%s': no observed values", name)
	}
	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	series := Series{Name: name, Type: "bar"}
	for _, code := range codes {
		series.X = append(series.X, float64(code))
		series.Y = append(series.Y, counts[code])
		series.Labels = append(series.Labels, label(code))
	}
	return Spec{
		PlotType:  "bar",
		Title:     fmt.Sprintf("Count by %s", name),
		Timestamp: time.Now().UTC(),
		Series:    []Series{series},
		XLabel:    name,
		YLabel:    "count",
	}, nil
}

// Render draws the first series of the spec as a terminal chart.
func (s Spec) Render() string {
	if len(s.Series) == 0 || len(s.Series[0].Y) == 0 {
		return ""
	}
	return asciigraph.Plot(s.Series[0].Y,
		asciigraph.Height(10),
		asciigraph.Caption(s.Title),
	)
}

// Save writes the spec as JSON under dir.
func (s Spec) Save(dir, name string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not make plots dir: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal plot '%s': %w", name, err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("could not write plot '%s': %w", path, err)
	}
	log.Info().Str("path", path).Msg("plot saved")
	return nil
}
