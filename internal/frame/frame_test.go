package frame

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_MissingMarkers(t *testing.T) {
	f, err := Read(strings.NewReader("a,b\n1,x\n?,2\n,3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Rows())

	f.CoerceAll()
	a, err := f.Column("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.Vals[0])
	assert.True(t, math.IsNaN(a.Vals[1]))
	assert.True(t, math.IsNaN(a.Vals[2]))

	b, err := f.Column("b")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(b.Vals[0]))
	assert.Equal(t, 2.0, b.Vals[1])
}

func TestColumn_Coerce(t *testing.T) {

	type test struct {
		input  string
		output float64
	}

	tests := map[string]test{
		"integer":  {input: "7", output: 7},
		"rounds":   {input: "25.7", output: 26},
		"negative": {input: "-1.2", output: -1},
		"garbage":  {input: "bad", output: math.NaN()},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Column{Raw: []string{tt.input}}
			c.Coerce()
			if math.IsNaN(tt.output) {
				assert.True(t, math.IsNaN(c.Vals[0]))
			} else {
				assert.Equal(t, tt.output, c.Vals[0])
			}
		})
	}
}

func TestColumn_Stats(t *testing.T) {
	c := &Column{Vals: []float64{1, 2, 3, 4, 100, math.NaN()}}

	median, err := c.Median()
	require.NoError(t, err)
	assert.Equal(t, 3.0, median)

	q1, err := c.Quantile(0.25)
	require.NoError(t, err)
	assert.Equal(t, 2.0, q1)

	q3, err := c.Quantile(0.75)
	require.NoError(t, err)
	assert.Equal(t, 4.0, q3)

	assert.Equal(t, 1, c.MissingCount())
}

func TestColumn_Mode(t *testing.T) {
	c := &Column{Vals: []float64{3, 3, 5, 9, 9, math.NaN()}}

	mode, err := c.Mode(nil)
	require.NoError(t, err)
	// ties resolve to the smallest value
	assert.Equal(t, 3.0, mode)

	inDomain := func(v float64) bool { return v >= 4 && v <= 6 }
	mode, err = c.Mode(inDomain)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mode)

	_, err = c.Mode(func(float64) bool { return false })
	assert.ErrorIs(t, err, ErrAllNaN)
}

func TestColumn_Clip(t *testing.T) {
	c := &Column{Vals: []float64{-5, 0, 5, 10, math.NaN()}}
	c.Clip(0, 8)
	assert.Equal(t, 0.0, c.Vals[0])
	assert.Equal(t, 0.0, c.Vals[1])
	assert.Equal(t, 5.0, c.Vals[2])
	assert.Equal(t, 8.0, c.Vals[3])
	assert.True(t, math.IsNaN(c.Vals[4]))
}

func TestFrame_WriteRoundTrip(t *testing.T) {
	f := New()
	require.NoError(t, f.AddVals("a", []float64{1, 2}))
	require.NoError(t, f.AddVals("b", []float64{3, 4}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	assert.Equal(t, "a,b\n1,3\n2,4\n", buf.String())

	back, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	back.CoerceAll()
	col, err := back.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, col.Vals)
}

func TestFrame_WriteRejectsMissing(t *testing.T) {
	f := New()
	require.NoError(t, f.AddVals("a", []float64{1, math.NaN()}))
	var buf bytes.Buffer
	assert.Error(t, f.Write(&buf))
}

func TestFrame_DropDuplicateRows(t *testing.T) {
	f := New()
	require.NoError(t, f.AddVals("a", []float64{1, 1, 2}))
	require.NoError(t, f.AddVals("b", []float64{5, 5, 5}))
	require.NoError(t, f.DropDuplicateRows())
	assert.Equal(t, 2, f.Rows())
	col, err := f.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, col.Vals)
}

func TestFrame_Drop(t *testing.T) {
	f := New()
	require.NoError(t, f.AddVals("a", []float64{1}))
	f.Drop("a")
	f.Drop("missing") // tolerated
	assert.False(t, f.Has("a"))
	assert.Empty(t, f.Names())
}
