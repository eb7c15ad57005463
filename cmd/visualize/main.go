package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/infra/config"
	"github.com/workline/absenteeism/internal/frame"
	"github.com/workline/absenteeism/internal/plot"
	"github.com/workline/absenteeism/internal/schema"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Columns worth a distribution plot when eyeballing a processed batch.
var plotted = []string{
	schema.Target, schema.Age, schema.Transportation, schema.WorkLoad, schema.BodyMassIndex,
}

// Categorical columns plotted as labeled count bars.
var counted = []string{
	schema.Day, schema.Seasons, schema.Education, schema.Reason,
}

func main() {
	cfg := config.LoadVisualize()

	f, err := frame.ReadCSV(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load processed data")
	}
	f.CoerceAll()

	for _, name := range plotted {
		col, err := f.Column(name)
		if err != nil {
			log.Fatal().Err(err).Msg("column missing from processed data")
		}
		spec, err := plot.Histogram(col, name, 12)
		if err != nil {
			log.Fatal().Err(err).Msg("could not build histogram")
		}
		fmt.Println(spec.Render())
		fmt.Println()
		if err := spec.Save(cfg.PlotsDir, slug(name)); err != nil {
			log.Fatal().Err(err).Msg("could not save plot")
		}
	}

	for _, name := range counted {
		col, err := f.Column(name)
		if err != nil {
			log.Fatal().Err(err).Msg("column missing from processed data")
		}
		column := name
		spec, err := plot.Bar(col, name, func(code int) string {
			return schema.Label(column, code)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("could not build bar chart")
		}
		fmt.Println(spec.Render())
		fmt.Println()
		if err := spec.Save(cfg.PlotsDir, slug(name)+"_counts"); err != nil {
			log.Fatal().Err(err).Msg("could not save plot")
		}
	}
	log.Info().Str("dir", cfg.PlotsDir).Int("plots", len(plotted)+len(counted)).Msg("visualization complete")
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, " ", "_"), "/", "_"))
}
