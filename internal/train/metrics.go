package train

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics are the standard regression error measures for one split.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Evaluate computes MAE, RMSE and R2 of predictions against the truth.
// A constant truth vector has no variance to explain; R2 reports 0 there.
func Evaluate(truth, pred []float64) Metrics {
	n := float64(len(truth))
	if n == 0 {
		return Metrics{}
	}
	absSum, sqSum := 0.0, 0.0
	for i := range truth {
		d := pred[i] - truth[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}
	mean := stat.Mean(truth, nil)
	total := 0.0
	for _, v := range truth {
		d := v - mean
		total += d * d
	}
	r2 := 0.0
	if total > 0 {
		r2 = 1 - sqSum/total
	}
	return Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   r2,
	}
}
