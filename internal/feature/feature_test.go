package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline/absenteeism/internal/frame"
	"github.com/workline/absenteeism/internal/schema"
)

func processedFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New()
	require.NoError(t, f.AddVals(schema.Reason, []float64{23, 0, 23, 23}))
	require.NoError(t, f.AddVals(schema.Age, []float64{33, 40, 33, 28}))
	require.NoError(t, f.AddVals(schema.Target, []float64{4, 8, 4, 2}))
	return f
}

func TestPrepare(t *testing.T) {
	set, err := Prepare(processedFrame(t), schema.Target)
	require.NoError(t, err)

	assert.Equal(t, []string{schema.Reason, schema.Age}, set.Columns)
	assert.Equal(t, []string{schema.Reason}, set.Categorical)
	assert.Equal(t, []string{schema.Age}, set.Numeric)
	// row 2 duplicates row 0 and is dropped
	assert.Equal(t, []float64{4, 8, 2}, set.Y)
	assert.Equal(t, [][]float64{{23, 33}, {0, 40}, {23, 28}}, set.X)
}

func TestPrepare_MissingTarget(t *testing.T) {
	f := frame.New()
	require.NoError(t, f.AddVals(schema.Age, []float64{33}))
	_, err := Prepare(f, schema.Target)
	assert.Error(t, err)
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	f := processedFrame(t)
	_, err := Prepare(f, schema.Target)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Rows())
}

func TestSet_Record(t *testing.T) {
	set := &Set{Columns: []string{schema.Reason, schema.Age}}

	row, err := set.Record(map[string]float64{schema.Age: 30, schema.Reason: 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 30}, row)

	_, err = set.Record(map[string]float64{schema.Age: 30})
	assert.Error(t, err)

	_, err = set.Record(map[string]float64{schema.Age: 30, schema.Reason: 5, "bogus": 1})
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	set := Default()
	assert.Len(t, set.Columns, 19)
	assert.Len(t, set.Categorical, 8)
	assert.Len(t, set.Numeric, 11)
}
