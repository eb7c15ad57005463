package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRidge_FitsLinearData(t *testing.T) {
	x := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}}
	y := []float64{1, 3, 5, 7, 9, 11} // y = 2x + 1

	m := &Ridge{Lambda: 1e-6}
	require.NoError(t, m.Fit(x, y))

	pred, err := m.Predict([][]float64{{6}})
	require.NoError(t, err)
	assert.InDelta(t, 13.0, pred[0], 0.01)
}

func TestRidge_StateRoundTrip(t *testing.T) {
	x := [][]float64{{0, 1}, {1, 0}, {2, 2}, {3, 1}}
	y := []float64{1, 2, 6, 7}

	m := &Ridge{Lambda: 0.5}
	require.NoError(t, m.Fit(x, y))
	want, err := m.Predict(x)
	require.NoError(t, err)

	state, err := m.State()
	require.NoError(t, err)
	back, err := ridgeFamily().Restore(state)
	require.NoError(t, err)

	got, err := back.Predict(x)
	require.NoError(t, err)
	// persisted weights restore exactly, so predictions are bit-identical
	assert.Equal(t, want, got)
}

func TestKNN_PredictsNeighbourMean(t *testing.T) {
	x := [][]float64{{0}, {1}, {10}, {11}}
	y := []float64{2, 4, 20, 22}

	m := &KNN{K: 2}
	require.NoError(t, m.Fit(x, y))

	pred, err := m.Predict([][]float64{{0.4}, {10.6}})
	require.NoError(t, err)
	assert.Equal(t, 3.0, pred[0])
	assert.Equal(t, 21.0, pred[1])
}

func TestKNN_KLargerThanData(t *testing.T) {
	m := &KNN{K: 10}
	require.NoError(t, m.Fit([][]float64{{0}, {1}}, []float64{2, 4}))
	pred, err := m.Predict([][]float64{{0}})
	require.NoError(t, err)
	assert.Equal(t, 3.0, pred[0])
}

func TestKNN_StateRoundTrip(t *testing.T) {
	x := [][]float64{{0}, {1}, {2}}
	y := []float64{1, 2, 3}
	m := &KNN{K: 1}
	require.NoError(t, m.Fit(x, y))
	want, err := m.Predict(x)
	require.NoError(t, err)

	state, err := m.State()
	require.NoError(t, err)
	back, err := knnFamily().Restore(state)
	require.NoError(t, err)
	got, err := back.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestForest_SingleClassUnavailable(t *testing.T) {
	m := &Forest{Trees: 10}
	err := m.Fit([][]float64{{1}, {2}}, []float64{4, 4})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestForest_PredictionsWithinTargetRange(t *testing.T) {
	x := make([][]float64, 60)
	y := make([]float64, 60)
	for i := range x {
		x[i] = []float64{float64(i % 10), float64(i % 3)}
		y[i] = float64(i % 4)
	}
	m := &Forest{Trees: 20, Seed: 42}
	require.NoError(t, m.Fit(x, y))

	pred, err := m.Predict(x[:5])
	require.NoError(t, err)
	for i, p := range pred {
		assert.GreaterOrEqual(t, p, 0.0, "prediction %d", i)
		assert.LessOrEqual(t, p, 3.0, "prediction %d", i)
	}
}

func TestRegistry_Order(t *testing.T) {
	r := Default()
	names := make([]string, 0, 3)
	for _, f := range r.Families() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"ridge", "knn", "forest"}, names)
}

func TestRegistry_RestoreUnknownFamily(t *testing.T) {
	_, err := Default().Restore("catboost", nil)
	assert.Error(t, err)
}
