package pipeline

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skill-radar/internal/model"
)

// ErrAlreadyRunning is returned when a run is triggered while another is in
// flight. The trigger is rejected, never queued.
var ErrAlreadyRunning = errors.New("already running")

// Registry is the single-slot run registry: at most one run in flight, and
// the most recent run record retained for status queries.
type Registry struct {
	mu      sync.Mutex
	running bool
	latest  *model.PipelineRun
}

func NewRegistry() *Registry {
	return &Registry{}
}

// StartRun claims the run slot. It fails with ErrAlreadyRunning when a run
// is in flight; otherwise it returns the freshly created running record.
func (r *Registry) StartRun() (model.PipelineRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return model.PipelineRun{}, ErrAlreadyRunning
	}

	run := model.PipelineRun{
		ID:        uuid.New(),
		Status:    model.RunRunning,
		StartedAt: time.Now().UTC(),
		Errors:    []string{},
	}
	r.running = true
	r.latest = &run
	return run, nil
}

// Complete releases the run slot and records the terminal run result.
func (r *Registry) Complete(run model.PipelineRun) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	r.latest = &run
}

// Status reports the most recent run record. The second return is false
// until the first run has been triggered.
func (r *Registry) Status() (model.PipelineRun, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.latest == nil {
		return model.PipelineRun{}, false
	}
	return *r.latest, true
}

// Running reports whether a run is currently in flight.
func (r *Registry) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
