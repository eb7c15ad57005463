package tracking

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_RecordsRun(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTracker(dir, "absenteeism_prediction")

	run := tracker.Start("ridge", map[string]any{"lambda": 1.0})
	require.NotEmpty(t, run.ID)
	assert.Equal(t, "absenteeism_prediction", run.Experiment)
	assert.False(t, run.StartedAt.IsZero())

	tracker.Finish(run, map[string]float64{"test_rmse": 3.2})

	b, err := os.ReadFile(filepath.Join(dir, "absenteeism_prediction", run.ID+".json"))
	require.NoError(t, err)

	var back Run
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, run.ID, back.ID)
	assert.Equal(t, "ridge", back.Name)
	assert.Equal(t, 3.2, back.Metrics["test_rmse"])
	assert.False(t, back.FinishedAt.IsZero())
	assert.False(t, back.FinishedAt.Before(back.StartedAt))
}

func TestTracker_DistinctRunIDs(t *testing.T) {
	tracker := NewTracker(t.TempDir(), "exp")
	a := tracker.Start("ridge", nil)
	b := tracker.Start("ridge", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

// an unwritable runs dir must not surface an error to the caller
func TestTracker_FinishBestEffort(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tracker := NewTracker(file, "exp")
	run := tracker.Start("knn", nil)
	tracker.Finish(run, nil)
	assert.False(t, run.FinishedAt.IsZero())
}
