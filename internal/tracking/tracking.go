// Package tracking records training runs, one JSON document per run.
// Tracking is best-effort: a failed write is logged and never fails the
// training loop.
package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/storage"
	jsonstore "github.com/workline/absenteeism/internal/storage/file/json"
)

// Run is one tracked model fit.
type Run struct {
	ID         string             `json:"id"`
	Experiment string             `json:"experiment"`
	Name       string             `json:"name"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Params     map[string]any     `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Tracker appends runs to a registry, one collection per experiment.
type Tracker struct {
	registry   storage.Registry
	experiment string
}

// NewTracker creates a tracker writing JSON documents under dir for the
// given experiment.
func NewTracker(dir, experiment string) *Tracker {
	return &Tracker{registry: jsonstore.NewRegistry(dir), experiment: experiment}
}

// NewVoidTracker creates a tracker that discards every run.
func NewVoidTracker(experiment string) *Tracker {
	return &Tracker{registry: storage.NewVoidRegistry(), experiment: experiment}
}

// Start opens a run with a fresh id.
func (t *Tracker) Start(name string, params map[string]any) *Run {
	return &Run{
		ID:         uuid.New().String(),
		Experiment: t.experiment,
		Name:       name,
		StartedAt:  time.Now().UTC(),
		Params:     params,
	}
}

// Finish stamps the run, attaches metrics and writes it out. Errors are
// logged, not returned; experiment tracking must never abort training.
func (t *Tracker) Finish(run *Run, metrics map[string]float64) {
	run.FinishedAt = time.Now().UTC()
	run.Metrics = metrics
	key := storage.K{Collection: t.experiment, Name: run.ID}
	if err := t.registry.Put(key, run); err != nil {
		log.Warn().Err(err).Str("run", run.Name).Msg("could not record run")
		return
	}
	log.Info().Str("run", run.Name).Str("id", run.ID).Msg("run recorded")
}
