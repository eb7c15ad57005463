// Package config loads per-command configuration: JSON defaults under
// infra/config overlaid with environment variables (a .env file is honored
// when present).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/regress"
)

const path = "infra/config"

// Clean configures the batch cleaning job.
type Clean struct {
	RawPath       string `json:"raw_path"`
	ProcessedPath string `json:"processed_path"`
}

// Train configures the training loop.
type Train struct {
	DataPath     string         `json:"data_path"`
	ModelsDir    string         `json:"models_dir"`
	ReportsDir   string         `json:"reports_dir"`
	RunsDir      string         `json:"runs_dir"`
	Experiment   string         `json:"experiment"`
	Seed         int64          `json:"seed"`
	TestFraction float64        `json:"test_fraction"`
	Params       regress.Params `json:"params"`
}

// Server configures the prediction service.
type Server struct {
	Port      int    `json:"port"`
	ModelPath string `json:"model_path"`
	StaticDir string `json:"static_dir"`
}

// Visualize configures the plotting command.
type Visualize struct {
	DataPath string `json:"data_path"`
	PlotsDir string `json:"plots_dir"`
}

// LoadClean returns the cleaning config with defaults applied.
func LoadClean() Clean {
	cfg := Clean{
		RawPath:       "data/raw/work_absenteeism_raw.csv",
		ProcessedPath: "data/processed/work_absenteeism_processed.csv",
	}
	load("clean", &cfg)
	cfg.RawPath = envString("ABSENTEEISM_RAW_PATH", cfg.RawPath)
	cfg.ProcessedPath = envString("ABSENTEEISM_PROCESSED_PATH", cfg.ProcessedPath)
	return cfg
}

// LoadTrain returns the training config with defaults applied.
func LoadTrain() Train {
	cfg := Train{
		DataPath:     "data/processed/work_absenteeism_processed.csv",
		ModelsDir:    "models",
		ReportsDir:   "reports/metrics",
		RunsDir:      "runs",
		Experiment:   "absenteeism_prediction",
		Seed:         42,
		TestFraction: 0.2,
		Params: regress.Params{
			Seed:       42,
			Lambda:     1.0,
			Neighbours: 5,
			Trees:      500,
		},
	}
	load("train", &cfg)
	cfg.DataPath = envString("ABSENTEEISM_PROCESSED_PATH", cfg.DataPath)
	cfg.ModelsDir = envString("ABSENTEEISM_MODELS_DIR", cfg.ModelsDir)
	cfg.Seed = envInt64("ABSENTEEISM_SEED", cfg.Seed)
	return cfg
}

// LoadServer returns the service config with defaults applied.
func LoadServer() Server {
	cfg := Server{
		Port:      8000,
		ModelPath: "models/best_model.json",
		StaticDir: "static",
	}
	load("server", &cfg)
	cfg.Port = int(envInt64("ABSENTEEISM_PORT", int64(cfg.Port)))
	cfg.ModelPath = envString("ABSENTEEISM_MODEL_PATH", cfg.ModelPath)
	cfg.StaticDir = envString("ABSENTEEISM_STATIC_DIR", cfg.StaticDir)
	return cfg
}

// LoadVisualize returns the plotting config with defaults applied.
func LoadVisualize() Visualize {
	cfg := Visualize{
		DataPath: "data/processed/work_absenteeism_processed.csv",
		PlotsDir: "reports/plots",
	}
	load("visualize", &cfg)
	cfg.DataPath = envString("ABSENTEEISM_PROCESSED_PATH", cfg.DataPath)
	return cfg
}

// load overlays the JSON config for the given key, when the file exists.
// A malformed config file is a hard failure; a missing one is not.
func load(key string, v interface{}) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env overrides")
	}
	file := filepath.Join(path, key+".json")
	b, err := os.ReadFile(file)
	if err != nil {
		log.Debug().Str("config", key).Msg("no config file, using defaults")
		return
	}
	if err := json.Unmarshal(b, v); err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}
	log.Info().Str("config", key).Msg("loaded config")
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid value for %s: %s", key, v))
	}
	return n
}
