// Package jobs provides the in-memory store of asynchronous scan jobs and
// their lifecycle state machine.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Status is a job lifecycle state. Transitions are monotonic:
// pending -> running -> completed|failed, with no way out of a terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether a status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ScanResultResponse is the simplified remote-API result: which categories
// are present in the scanned repository.
type ScanResultResponse struct {
	GitURL       string          `json:"git_url"`
	Dependencies map[string]bool `json:"dependencies"`
}

// Job is one asynchronous remote-scan request. Result is set if and only if
// the job completed; ErrorMessage if and only if it failed.
type Job struct {
	ID           string              `json:"job_id"`
	GitURL       string              `json:"git_url"`
	Status       Status              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	Progress     int                 `json:"progress"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Result       *ScanResultResponse `json:"result,omitempty"`

	lastUpdate time.Time
}

// Manager is the concurrency-safe job store. All mutation goes through its
// methods so the state-machine invariants hold under concurrent access; the
// raw map is never exposed.
type Manager struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	logger hclog.Logger

	now func() time.Time // overridable for tests
}

// NewManager creates an empty job store.
func NewManager(logger hclog.Logger) *Manager {
	return &Manager{
		jobs:   make(map[string]*Job),
		logger: logger,
		now:    time.Now,
	}
}

// CreateJob registers a new pending job and returns its id. Always succeeds.
func (m *Manager) CreateJob(gitURL string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	job := &Job{
		ID:         uuid.New().String(),
		GitURL:     gitURL,
		Status:     StatusPending,
		CreatedAt:  now,
		Progress:   0,
		lastUpdate: now,
	}
	m.jobs[job.ID] = job

	m.logger.Info("job created", "job_id", job.ID, "git_url", gitURL)
	return job.ID
}

// UpdateJobStatus moves a job to the given status and progress. Unknown ids
// are a no-op, transitions out of terminal states are ignored, and progress
// never decreases while running.
func (m *Manager) UpdateJobStatus(id string, status Status, progress int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	job.Status = status
	if progress > job.Progress {
		job.Progress = progress
	}
	job.lastUpdate = m.now().UTC()
}

// SetJobResult finalizes a job as completed with its result, forcing progress
// to 100 and stamping the completion time.
func (m *Manager) SetJobResult(id string, result *ScanResultResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	now := m.now().UTC()
	job.Status = StatusCompleted
	job.Progress = 100
	job.Result = result
	job.CompletedAt = &now
	job.lastUpdate = now

	m.logger.Info("job completed", "job_id", id)
}

// SetJobError finalizes a job as failed with the given message.
func (m *Manager) SetJobError(id string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	now := m.now().UTC()
	job.Status = StatusFailed
	job.ErrorMessage = message
	job.CompletedAt = &now
	job.lastUpdate = now

	m.logger.Warn("job failed", "job_id", id, "error", message)
}

// GetJob returns a copy of the job; readers never mutate store state.
func (m *Manager) GetJob(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// RemoveJob deletes a job, reporting whether it existed.
func (m *Manager) RemoveJob(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.jobs[id]
	delete(m.jobs, id)
	return ok
}

// Len returns the number of stored jobs.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// StaleJobs returns the ids of jobs running longer than threshold without a
// progress update. Staleness is advisory: slow clones look identical to hung
// workers, so stale jobs are surfaced for monitoring, never auto-failed.
func (m *Manager) StaleJobs(threshold time.Duration) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := m.now().UTC().Add(-threshold)
	var stale []string
	for id, job := range m.jobs {
		if job.Status == StatusRunning && job.lastUpdate.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	return stale
}

// Cleanup removes terminal jobs older than maxAge and returns how many were
// removed. The id snapshot is taken before any removal so the sweep cannot
// race an in-flight status update into deleting a job it has not inspected.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.RLock()
	ids := make([]string, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	cutoff := m.now().UTC().Add(-maxAge)
	removed := 0
	for _, id := range ids {
		m.mu.Lock()
		job, ok := m.jobs[id]
		if ok && job.Status.Terminal() && job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
		m.mu.Unlock()
	}

	if removed > 0 {
		m.logger.Info("cleanup sweep removed jobs", "removed", removed)
	}
	return removed
}

// StartCleanup runs the periodic cleanup sweep until the context is
// cancelled. Each tick also reports stale running jobs.
func (m *Manager) StartCleanup(ctx context.Context, interval, maxAge, staleThreshold time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Cleanup(maxAge)
				if stale := m.StaleJobs(staleThreshold); len(stale) > 0 {
					m.logger.Warn("stale running jobs detected", "job_ids", stale, "threshold", staleThreshold)
				}
			}
		}
	}()
}
