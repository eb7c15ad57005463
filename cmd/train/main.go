package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/infra/config"
	"github.com/workline/absenteeism/internal/feature"
	"github.com/workline/absenteeism/internal/frame"
	"github.com/workline/absenteeism/internal/regress"
	"github.com/workline/absenteeism/internal/schema"
	"github.com/workline/absenteeism/internal/tracking"
	"github.com/workline/absenteeism/internal/train"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfg := config.LoadTrain()

	log.Info().Str("path", cfg.DataPath).Msg("starting model training")
	f, err := frame.ReadCSV(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load processed data")
	}
	f.CoerceAll()

	set, err := feature.Prepare(f, schema.Target)
	if err != nil {
		log.Fatal().Err(err).Msg("could not prepare features")
	}

	tracker := tracking.NewTracker(cfg.RunsDir, cfg.Experiment)
	report, err := train.Run(set, regress.Default(), train.Config{
		Seed:         cfg.Seed,
		TestFraction: cfg.TestFraction,
		ModelsDir:    cfg.ModelsDir,
		ReportsDir:   cfg.ReportsDir,
		Params:       cfg.Params,
	}, tracker)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	log.Info().Str("best", report.Best).Int("models", len(report.Models)).Msg("training finished")
}
