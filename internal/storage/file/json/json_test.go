package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline/absenteeism/internal/storage"
)

type doc struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry(t.TempDir())
	key := storage.K{Collection: "runs", Name: "abc"}

	require.NoError(t, r.Put(key, doc{Name: "ridge", Score: 3.2}))

	var back doc
	require.NoError(t, r.Get(key, &back))
	assert.Equal(t, doc{Name: "ridge", Score: 3.2}, back)
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry(t.TempDir())
	var back doc
	err := r.Get(storage.K{Collection: "runs", Name: "nope"}, &back)
	assert.ErrorIs(t, err, storage.NotFoundErr)
}

func TestSave_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, Save(file, "doc.json", doc{}))
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("{oops"), 0o644))
	var back doc
	err := Load(dir, "doc.json", &back)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}
