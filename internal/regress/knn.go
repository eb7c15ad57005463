package regress

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// KNN predicts the mean target of the k nearest training rows in the
// preprocessed feature space. Ties on distance resolve by training-row
// index, which keeps predictions stable and the artifact round trip exact.
type KNN struct {
	K int         `json:"k"`
	X [][]float64 `json:"x"`
	Y []float64   `json:"y"`
}

func knnFamily() Family {
	return Family{
		Name: "knn",
		New: func(p Params) (Regressor, error) {
			k := p.Neighbours
			if k <= 0 {
				k = 5
			}
			return &KNN{K: k}, nil
		},
		Restore: func(state json.RawMessage) (Regressor, error) {
			m := &KNN{}
			if err := json.Unmarshal(state, m); err != nil {
				return nil, err
			}
			if len(m.X) == 0 || len(m.X) != len(m.Y) {
				return nil, fmt.Errorf("knn state has inconsistent training data")
			}
			return m, nil
		},
	}
}

func (m *KNN) Name() string { return "knn" }

func (m *KNN) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training shape: %d rows, %d targets", len(x), len(y))
	}
	m.X = make([][]float64, len(x))
	for i, row := range x {
		m.X[i] = append([]float64(nil), row...)
	}
	m.Y = append([]float64(nil), y...)
	return nil
}

func (m *KNN) Predict(x [][]float64) ([]float64, error) {
	if len(m.X) == 0 {
		return nil, fmt.Errorf("knn model is not fitted")
	}
	k := m.K
	if k > len(m.X) {
		k = len(m.X)
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.X[0]) {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), len(m.X[0]))
		}
		type neighbour struct {
			dist float64
			idx  int
		}
		neighbours := make([]neighbour, len(m.X))
		for j, train := range m.X {
			neighbours[j] = neighbour{dist: euclidean(row, train), idx: j}
		}
		sort.Slice(neighbours, func(a, b int) bool {
			if neighbours[a].dist != neighbours[b].dist {
				return neighbours[a].dist < neighbours[b].dist
			}
			return neighbours[a].idx < neighbours[b].idx
		})
		sum := 0.0
		for _, n := range neighbours[:k] {
			sum += m.Y[n.idx]
		}
		out[i] = sum / float64(k)
	}
	return out, nil
}

func (m *KNN) State() (json.RawMessage, error) {
	return json.Marshal(m)
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
