// Package train runs the supervised training loop: one shared preprocessing
// fit plus one regressor fit per registered model family, evaluated on a
// held-out split, with every fitted pipeline persisted and the best one
// promoted under a stable name.
package train

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/artifact"
	"github.com/workline/absenteeism/internal/feature"
	"github.com/workline/absenteeism/internal/preprocess"
	"github.com/workline/absenteeism/internal/regress"
	jsonstore "github.com/workline/absenteeism/internal/storage/file/json"
	"github.com/workline/absenteeism/internal/tracking"
)

// BestModelFile is the stable artifact name the prediction service loads.
const BestModelFile = "best_model.json"

// Config drives one training run.
type Config struct {
	Seed         int64          `json:"seed"`
	TestFraction float64        `json:"test_fraction"`
	ModelsDir    string         `json:"models_dir"`
	ReportsDir   string         `json:"reports_dir"`
	Params       regress.Params `json:"params"`
}

// ModelReport is the structured metrics record for one trained model.
type ModelReport struct {
	Name      string  `json:"name"`
	TrainMAE  float64 `json:"train_mae"`
	TrainRMSE float64 `json:"train_rmse"`
	TrainR2   float64 `json:"train_r2"`
	TestMAE   float64 `json:"test_mae"`
	TestRMSE  float64 `json:"test_rmse"`
	TestR2    float64 `json:"test_r2"`
}

// Report summarizes a full training run.
type Report struct {
	Models []ModelReport `json:"models"`
	Best   string        `json:"best"`
}

// Run fits every registered family on the training split and selects the
// model with the lowest held-out RMSE. Unavailable families are skipped
// with a warning; ties keep the first-registered model.
func Run(set *feature.Set, registry *regress.Registry, cfg Config, tracker *tracking.Tracker) (*Report, error) {
	split, err := NewSplit(len(set.Y), cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("could not split data: %w", err)
	}
	log.Info().Int("train", len(split.Train)).Int("test", len(split.Test)).
		Int64("seed", cfg.Seed).Msg("split data")

	xTrain := Take(set.X, split.Train)
	xTest := Take(set.X, split.Test)
	yTrain := TakeVec(set.Y, split.Train)
	yTest := TakeVec(set.Y, split.Test)

	// One preprocessing definition per run, fit on the training split only.
	pre := preprocess.New(set.Columns, set.Numeric, set.Categorical)
	if err := pre.Fit(xTrain); err != nil {
		return nil, fmt.Errorf("could not fit preprocessing: %w", err)
	}
	encTrain, err := pre.Transform(xTrain)
	if err != nil {
		return nil, err
	}
	encTest, err := pre.Transform(xTest)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	bestRMSE := 0.0
	var bestModel regress.Regressor

	for _, family := range registry.Families() {
		model, err := family.New(cfg.Params)
		if err != nil {
			if errors.Is(err, regress.ErrUnavailable) {
				log.Warn().Str("model", family.Name).Err(err).Msg("model family unavailable, skipping")
				continue
			}
			return nil, fmt.Errorf("could not build '%s': %w", family.Name, err)
		}
		log.Info().Str("model", family.Name).Msg("training model")

		run := tracker.Start(family.Name, map[string]any{
			"seed":          cfg.Seed,
			"test_fraction": cfg.TestFraction,
			"params":        cfg.Params,
		})
		if err := model.Fit(encTrain, yTrain); err != nil {
			if errors.Is(err, regress.ErrUnavailable) {
				log.Warn().Str("model", family.Name).Err(err).Msg("model family unavailable, skipping")
				continue
			}
			return nil, fmt.Errorf("could not fit '%s': %w", family.Name, err)
		}

		predTrain, err := model.Predict(encTrain)
		if err != nil {
			return nil, fmt.Errorf("could not predict train split with '%s': %w", family.Name, err)
		}
		predTest, err := model.Predict(encTest)
		if err != nil {
			return nil, fmt.Errorf("could not predict test split with '%s': %w", family.Name, err)
		}
		trainMetrics := Evaluate(yTrain, predTrain)
		testMetrics := Evaluate(yTest, predTest)

		entry := ModelReport{
			Name:      family.Name,
			TrainMAE:  trainMetrics.MAE,
			TrainRMSE: trainMetrics.RMSE,
			TrainR2:   trainMetrics.R2,
			TestMAE:   testMetrics.MAE,
			TestRMSE:  testMetrics.RMSE,
			TestR2:    testMetrics.R2,
		}
		report.Models = append(report.Models, entry)
		log.Info().Str("model", family.Name).
			Float64("train_rmse", trainMetrics.RMSE).
			Float64("test_rmse", testMetrics.RMSE).
			Float64("test_r2", testMetrics.R2).
			Msg("model evaluated")

		path := filepath.Join(cfg.ModelsDir, fmt.Sprintf("%s_model.json", family.Name))
		if err := artifact.Save(path, pre, model); err != nil {
			return nil, err
		}
		tracker.Finish(run, map[string]float64{
			"train_mae":  entry.TrainMAE,
			"train_rmse": entry.TrainRMSE,
			"train_r2":   entry.TrainR2,
			"test_mae":   entry.TestMAE,
			"test_rmse":  entry.TestRMSE,
			"test_r2":    entry.TestR2,
		})

		// Strictly lower wins; ties keep the earlier registration.
		if bestModel == nil || entry.TestRMSE < bestRMSE {
			bestRMSE = entry.TestRMSE
			bestModel = model
			report.Best = family.Name
		}
	}

	if bestModel == nil {
		return nil, fmt.Errorf("no model family could be trained")
	}
	if err := artifact.Save(filepath.Join(cfg.ModelsDir, BestModelFile), pre, bestModel); err != nil {
		return nil, err
	}
	if err := writeReport(report, cfg.ReportsDir); err != nil {
		return nil, err
	}
	printSummary(report)
	log.Info().Str("best", report.Best).Float64("test_rmse", bestRMSE).Msg("training complete")
	return report, nil
}

func writeReport(report *Report, dir string) error {
	if err := jsonstore.Save(dir, "training_metrics.json", report); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}

func printSummary(report *Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Model", "Train RMSE", "Test MAE", "Test RMSE", "Test R2", "Best"})
	for _, m := range report.Models {
		best := ""
		if m.Name == report.Best {
			best = "*"
		}
		table.Append([]string{
			m.Name,
			strconv.FormatFloat(m.TrainRMSE, 'f', 3, 64),
			strconv.FormatFloat(m.TestMAE, 'f', 3, 64),
			strconv.FormatFloat(m.TestRMSE, 'f', 3, 64),
			strconv.FormatFloat(m.TestR2, 'f', 3, 64),
			best,
		})
	}
	table.Render()
}
