package preprocess

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitted(t *testing.T) *Transformer {
	t.Helper()
	tr := New([]string{"age", "day"}, []string{"age"}, []string{"day"})
	require.NoError(t, tr.Fit([][]float64{
		{20, 2},
		{30, 3},
		{40, 2},
	}))
	return tr
}

func TestTransformer_Scaling(t *testing.T) {
	tr := fitted(t)
	out, err := tr.Transform([][]float64{{30, 2}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	// age 30 is the mean of the training split
	assert.InDelta(t, 0.0, out[0][0], 1e-12)
	// one-hot block for day follows, categories sorted: 2 then 3
	assert.Equal(t, []float64{1, 0}, out[0][1:])
}

func TestTransformer_UnknownCategoryIsZeroBlock(t *testing.T) {
	tr := fitted(t)
	out, err := tr.Transform([][]float64{{20, 6}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, out[0][1:])
}

func TestTransformer_ConstantColumn(t *testing.T) {
	tr := New([]string{"x"}, []string{"x"}, nil)
	require.NoError(t, tr.Fit([][]float64{{5}, {5}, {5}}))
	out, err := tr.Transform([][]float64{{5}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0][0])
}

func TestTransformer_WidthAndNames(t *testing.T) {
	tr := fitted(t)
	assert.Equal(t, 3, tr.Width())
	assert.Equal(t, []string{"age", "day=2", "day=3"}, tr.FeatureNames())
}

func TestTransformer_RestoreRoundTrip(t *testing.T) {
	tr := fitted(t)
	in := [][]float64{{25, 3}, {35, 4}}
	want, err := tr.Transform(in)
	require.NoError(t, err)

	b, err := json.Marshal(tr)
	require.NoError(t, err)
	back := &Transformer{}
	require.NoError(t, json.Unmarshal(b, back))
	require.NoError(t, back.Restore())

	got, err := back.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTransformer_NotFitted(t *testing.T) {
	tr := New([]string{"x"}, []string{"x"}, nil)
	_, err := tr.Transform([][]float64{{1}})
	assert.Error(t, err)
}

func TestTransformer_BadRowWidth(t *testing.T) {
	tr := fitted(t)
	_, err := tr.Transform([][]float64{{1}})
	assert.Error(t, err)
}
