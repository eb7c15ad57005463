package server

import (
	"sync"

	"github.com/workline/absenteeism/internal/artifact"
	"github.com/workline/absenteeism/internal/regress"
)

// Holder is the process-wide reference to the currently loaded model.
// Request handlers read it concurrently; only an explicit reload replaces
// it, and the swap is atomic so a half-loaded model is never served.
type Holder struct {
	mu    sync.RWMutex
	model *artifact.Model
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Get returns the loaded model, if any.
func (h *Holder) Get() (*artifact.Model, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.model, h.model != nil
}

// Load reads the artifact at path and swaps it in. The previous model keeps
// serving until the new one is fully restored; on error the holder is left
// untouched.
func (h *Holder) Load(path string, registry *regress.Registry) error {
	model, err := artifact.Load(path, registry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.model = model
	h.mu.Unlock()
	return nil
}
