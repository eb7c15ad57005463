package regress

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"

	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// Forest wraps the randomForest library as a regressor. The library votes
// over integer classes, so the clipped integer target is mapped onto class
// indices and the prediction is the vote-probability weighted mean of the
// class values. Tree construction samples concurrently, so this family is
// not deterministic; the artifact therefore embeds the training data and
// refits on restore.
type Forest struct {
	Trees   int         `json:"trees"`
	Seed    int64       `json:"seed"`
	X       [][]float64 `json:"x"`
	Labels  []int       `json:"labels"`
	Classes []float64   `json:"classes"`

	forest *randomforest.Forest
}

func forestFamily() Family {
	return Family{
		Name: "forest",
		New: func(p Params) (Regressor, error) {
			trees := p.Trees
			if trees <= 0 {
				trees = 500
			}
			return &Forest{Trees: trees, Seed: p.Seed}, nil
		},
		Restore: func(state json.RawMessage) (Regressor, error) {
			m := &Forest{}
			if err := json.Unmarshal(state, m); err != nil {
				return nil, err
			}
			if err := m.build(); err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

func (m *Forest) Name() string { return "forest" }

// Fit maps the target onto class indices and trains the forest. A target
// with a single distinct value cannot be voted on and reports the family
// unavailable instead of failing the whole run.
func (m *Forest) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training shape: %d rows, %d targets", len(x), len(y))
	}
	seen := make(map[float64]struct{})
	for _, v := range y {
		seen[v] = struct{}{}
	}
	if len(seen) < 2 {
		return fmt.Errorf("target has %d distinct value(s): %w", len(seen), ErrUnavailable)
	}
	classes := make([]float64, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)
	index := make(map[float64]int, len(classes))
	for i, v := range classes {
		index[v] = i
	}

	m.Classes = classes
	m.X = make([][]float64, len(x))
	for i, row := range x {
		m.X[i] = append([]float64(nil), row...)
	}
	m.Labels = make([]int, len(y))
	for i, v := range y {
		m.Labels[i] = index[v]
	}
	return m.build()
}

func (m *Forest) build() error {
	if len(m.X) == 0 || len(m.X) != len(m.Labels) || len(m.Classes) < 2 {
		return fmt.Errorf("forest state has inconsistent training data")
	}
	rand.Seed(m.Seed)
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: m.X, Class: m.Labels}
	forest.Train(m.Trees)
	m.forest = forest
	log.Debug().Int("trees", m.Trees).Int("classes", len(m.Classes)).Msg("forest trained")
	return nil
}

func (m *Forest) Predict(x [][]float64) ([]float64, error) {
	if m.forest == nil {
		return nil, fmt.Errorf("forest model is not fitted")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		votes := m.forest.Vote(row)
		sum, weight := 0.0, 0.0
		for j, p := range votes {
			if j >= len(m.Classes) {
				break
			}
			sum += p * m.Classes[j]
			weight += p
		}
		if weight > 0 {
			out[i] = sum / weight
		}
	}
	return out, nil
}

func (m *Forest) State() (json.RawMessage, error) {
	return json.Marshal(m)
}
