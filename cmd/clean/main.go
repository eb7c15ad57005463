package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/infra/config"
	"github.com/workline/absenteeism/internal/clean"
	"github.com/workline/absenteeism/internal/frame"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// The cleaning job reads the raw CSV, runs the seven-stage pipeline and
// writes the processed CSV. It fails loudly on a missing file or column.
func main() {
	cfg := config.LoadClean()

	log.Info().Str("path", cfg.RawPath).Msg("starting data preprocessing")
	f, err := frame.ReadCSV(cfg.RawPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load raw data")
	}

	if err := clean.New().Run(f); err != nil {
		log.Fatal().Err(err).Msg("cleaning pipeline failed")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ProcessedPath), os.ModePerm); err != nil {
		log.Fatal().Err(err).Msg("could not create output directory")
	}
	if err := f.WriteCSV(cfg.ProcessedPath); err != nil {
		log.Fatal().Err(err).Msg("could not save processed data")
	}
	log.Info().Str("path", cfg.ProcessedPath).Msg("data preprocessing completed")
}
