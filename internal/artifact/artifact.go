// Package artifact persists trained model bundles. A bundle couples the
// fitted preprocessing transform with the fitted regressor state, so a
// loaded artifact predicts exactly what the training process predicted.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/preprocess"
	"github.com/workline/absenteeism/internal/regress"
)

const schemaVersion = 1

// Bundle is the serialized form of a trained pipeline.
type Bundle struct {
	SchemaVersion int                     `json:"schema_version"`
	Family        string                  `json:"family"`
	CreatedAt     time.Time               `json:"created_at"`
	Preprocess    *preprocess.Transformer `json:"preprocess"`
	Model         json.RawMessage         `json:"model"`
}

// Model is a loaded, ready-to-predict pipeline.
type Model struct {
	Family     string
	Path       string
	CreatedAt  time.Time
	Preprocess *preprocess.Transformer
	Regressor  regress.Regressor
}

// Save writes the fitted pipeline to path, creating parent directories.
func Save(path string, t *preprocess.Transformer, m regress.Regressor) error {
	state, err := m.State()
	if err != nil {
		return fmt.Errorf("could not serialize '%s': %w", m.Name(), err)
	}
	bundle := Bundle{
		SchemaVersion: schemaVersion,
		Family:        m.Name(),
		CreatedAt:     time.Now().UTC(),
		Preprocess:    t,
		Model:         state,
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir for '%s': %w", path, err)
	}
	b, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal bundle: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	log.Info().Str("path", path).Str("family", m.Name()).Msg("model saved")
	return nil
}

// Load reads a bundle and restores the regressor through the registry.
func Load(path string, registry *regress.Registry) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model '%s': %w", path, err)
	}
	var bundle Bundle
	if err := json.Unmarshal(b, &bundle); err != nil {
		return nil, fmt.Errorf("could not unmarshal model '%s': %w", path, err)
	}
	if bundle.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("model '%s' has schema version %d, expected %d",
			path, bundle.SchemaVersion, schemaVersion)
	}
	if bundle.Preprocess == nil {
		return nil, fmt.Errorf("model '%s' has no preprocessing state", path)
	}
	if err := bundle.Preprocess.Restore(); err != nil {
		return nil, fmt.Errorf("model '%s': %w", path, err)
	}
	reg, err := registry.Restore(bundle.Family, bundle.Model)
	if err != nil {
		return nil, fmt.Errorf("model '%s': %w", path, err)
	}
	log.Info().Str("path", path).Str("family", bundle.Family).Msg("model loaded")
	return &Model{
		Family:     bundle.Family,
		Path:       path,
		CreatedAt:  bundle.CreatedAt,
		Preprocess: bundle.Preprocess,
		Regressor:  reg,
	}, nil
}

// Predict runs raw feature rows through preprocessing and the regressor.
func (m *Model) Predict(rows [][]float64) ([]float64, error) {
	enc, err := m.Preprocess.Transform(rows)
	if err != nil {
		return nil, fmt.Errorf("could not transform input: %w", err)
	}
	out, err := m.Regressor.Predict(enc)
	if err != nil {
		return nil, fmt.Errorf("could not predict: %w", err)
	}
	return out, nil
}
