// Package clean implements the deterministic cleaning pipeline for the raw
// absenteeism dataset: an ordered chain of stateless stages that enforce the
// schema's validity constraints on the full batch.
package clean

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/frame"
)

// Stage is one pure transformation of the dataset. Stages mutate the frame
// they are given and never reach outside it.
type Stage struct {
	Name  string
	Apply func(*frame.Frame) error
}

// Pipeline is a fixed sequence of stages applied in order.
type Pipeline struct {
	stages []Stage
}

// New composes the reference seven-stage pipeline. Stage order matters:
// coercion creates the missing set before domain repair, repair happens
// before outlier bounds are computed, and bounds are computed before
// imputation fills the gaps.
func New() Pipeline {
	return Pipeline{stages: []Stage{
		{Name: "drop_columns", Apply: dropColumns},
		{Name: "strip_cells", Apply: stripCells},
		{Name: "safe_round", Apply: safeRound},
		{Name: "fix_invalids", Apply: fixInvalids},
		{Name: "winsorize", Apply: winsorize},
		{Name: "fill_median", Apply: fillMedian},
		{Name: "final_int", Apply: finalInt},
	}}
}

// Run applies every stage in order. A stage failure aborts the run; this is
// an offline batch job and a broken input should fail loudly.
func (p Pipeline) Run(f *frame.Frame) error {
	for _, stage := range p.stages {
		if err := stage.Apply(f); err != nil {
			return fmt.Errorf("stage '%s': %w", stage.Name, err)
		}
		log.Info().Str("stage", stage.Name).Int("rows", f.Rows()).Msg("stage complete")
	}
	return nil
}

// Stages exposes the stage list, mostly so callers can report progress.
func (p Pipeline) Stages() []Stage {
	return p.stages
}
