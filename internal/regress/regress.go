// Package regress defines the regressor capability used by the training
// loop and a registry of model families. Anything that can fit a feature
// matrix against a target vector and predict from the same space satisfies
// the contract; families register a constructor and a restore function, and
// an unavailable family is skipped rather than aborting a run.
package regress

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable marks a model family that cannot run in this build or
// configuration. The training loop logs and skips it.
var ErrUnavailable = errors.New("model family unavailable")

// Regressor is the minimal capability the training loop needs.
type Regressor interface {
	Name() string
	Fit(x [][]float64, y []float64) error
	Predict(x [][]float64) ([]float64, error)
	// State serializes the fitted model for the artifact bundle.
	State() (json.RawMessage, error)
}

// Params carries the per-family hyperparameters from configuration.
// Families read the fields they understand.
type Params struct {
	Seed       int64   `json:"seed"`
	Lambda     float64 `json:"lambda"`
	Neighbours int     `json:"neighbours"`
	Trees      int     `json:"trees"`
}

// Family couples a model name with its constructor and artifact restore.
type Family struct {
	Name    string
	New     func(p Params) (Regressor, error)
	Restore func(state json.RawMessage) (Regressor, error)
}

// Registry keeps families in registration order; evaluation order and the
// tie-break on model selection both follow it.
type Registry struct {
	families []Family
	byName   map[string]Family
}

// NewRegistry builds a registry from the given families.
func NewRegistry(families ...Family) *Registry {
	r := &Registry{byName: make(map[string]Family, len(families))}
	for _, f := range families {
		r.families = append(r.families, f)
		r.byName[f.Name] = f
	}
	return r
}

// Default returns the reference registry: ridge, knn and forest, in that
// order.
func Default() *Registry {
	return NewRegistry(ridgeFamily(), knnFamily(), forestFamily())
}

// Families returns the registered families in order.
func (r *Registry) Families() []Family {
	return r.families
}

// Restore rebuilds a fitted regressor from its persisted family name and
// state.
func (r *Registry) Restore(name string, state json.RawMessage) (Regressor, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown model family '%s'", name)
	}
	m, err := f.Restore(state)
	if err != nil {
		return nil, fmt.Errorf("could not restore '%s': %w", name, err)
	}
	return m, nil
}
