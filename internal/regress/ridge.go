package regress

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is closed-form L2-regularized linear regression. With lambda > 0
// the normal equations are always solvable, and predictions round-trip the
// artifact bit-identically since only the weight vector is persisted.
type Ridge struct {
	Lambda  float64   `json:"lambda"`
	Weights []float64 `json:"weights"`
}

func ridgeFamily() Family {
	return Family{
		Name: "ridge",
		New: func(p Params) (Regressor, error) {
			lambda := p.Lambda
			if lambda <= 0 {
				lambda = 1.0
			}
			return &Ridge{Lambda: lambda}, nil
		},
		Restore: func(state json.RawMessage) (Regressor, error) {
			m := &Ridge{}
			if err := json.Unmarshal(state, m); err != nil {
				return nil, err
			}
			if len(m.Weights) == 0 {
				return nil, fmt.Errorf("ridge state has no weights")
			}
			return m, nil
		},
	}
}

func (m *Ridge) Name() string { return "ridge" }

// Fit solves (X'X + lambda*I) w = X'y with an intercept column appended.
// The intercept weight is regularized together with the rest.
func (m *Ridge) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training shape: %d rows, %d targets", len(x), len(y))
	}
	rows := len(x)
	cols := len(x[0]) + 1

	data := make([]float64, rows*cols)
	for i, row := range x {
		if len(row) != cols-1 {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), cols-1)
		}
		copy(data[i*cols:], row)
		data[i*cols+cols-1] = 1
	}
	xm := mat.NewDense(rows, cols, data)
	yv := mat.NewVecDense(rows, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(xm.T(), xm)
	for j := 0; j < cols; j++ {
		xtx.Set(j, j, xtx.At(j, j)+m.Lambda)
	}
	var xty mat.VecDense
	xty.MulVec(xm.T(), yv)

	var w mat.VecDense
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return fmt.Errorf("could not solve normal equations: %w", err)
	}
	m.Weights = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Weights[j] = w.AtVec(j)
	}
	return nil
}

func (m *Ridge) Predict(x [][]float64) ([]float64, error) {
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("ridge model is not fitted")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Weights)-1 {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), len(m.Weights)-1)
		}
		sum := m.Weights[len(m.Weights)-1]
		for j, v := range row {
			sum += v * m.Weights[j]
		}
		out[i] = sum
	}
	return out, nil
}

func (m *Ridge) State() (json.RawMessage, error) {
	return json.Marshal(m)
}
