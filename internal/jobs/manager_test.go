package jobs

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(hclog.NewNullLogger())
}

func TestCreateJob(t *testing.T) {
	m := newTestManager()
	id := m.CreateJob("https://github.com/scan-io-git/scan-io.git")

	job, ok := m.GetJob(id)
	require.True(t, ok)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, "https://github.com/scan-io-git/scan-io.git", job.GitURL)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Nil(t, job.Result)
	assert.Nil(t, job.CompletedAt)
	assert.Equal(t, 1, m.Len())

	// ids are unique
	other := m.CreateJob("https://github.com/scan-io-git/scan-io.git")
	assert.NotEqual(t, id, other)
}

func TestUpdateJobStatus(t *testing.T) {
	m := newTestManager()
	id := m.CreateJob("https://example.com/repo.git")

	m.UpdateJobStatus(id, StatusRunning, 30)
	job, _ := m.GetJob(id)
	assert.Equal(t, StatusRunning, job.Status)
	assert.Equal(t, 30, job.Progress)

	// progress never decreases
	m.UpdateJobStatus(id, StatusRunning, 10)
	job, _ = m.GetJob(id)
	assert.Equal(t, 30, job.Progress)

	// unknown ids are a no-op
	m.UpdateJobStatus("no-such-job", StatusRunning, 50)
	assert.Equal(t, 1, m.Len())
}

func TestTerminalStatesAreFinal(t *testing.T) {
	m := newTestManager()
	id := m.CreateJob("https://example.com/repo.git")

	m.SetJobResult(id, &ScanResultResponse{GitURL: "https://example.com/repo.git"})
	job, _ := m.GetJob(id)
	require.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.CompletedAt)

	// no transitions out of a terminal state
	m.UpdateJobStatus(id, StatusRunning, 10)
	m.SetJobError(id, "late failure")
	job, _ = m.GetJob(id)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Empty(t, job.ErrorMessage)
}

func TestSetJobError(t *testing.T) {
	m := newTestManager()
	id := m.CreateJob("https://example.com/repo.git")

	m.UpdateJobStatus(id, StatusRunning, 20)
	m.SetJobError(id, "clone failed")

	job, _ := m.GetJob(id)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "clone failed", job.ErrorMessage)
	assert.Nil(t, job.Result)
	require.NotNil(t, job.CompletedAt)

	// failed is terminal too
	m.SetJobResult(id, &ScanResultResponse{})
	job, _ = m.GetJob(id)
	assert.Equal(t, StatusFailed, job.Status)
}

func TestGetJobUnknown(t *testing.T) {
	m := newTestManager()
	_, ok := m.GetJob("missing")
	assert.False(t, ok)
}

func TestRemoveJob(t *testing.T) {
	m := newTestManager()
	id := m.CreateJob("https://example.com/repo.git")

	assert.True(t, m.RemoveJob(id))
	assert.False(t, m.RemoveJob(id))
	assert.Equal(t, 0, m.Len())
}

func TestCleanup(t *testing.T) {
	m := newTestManager()
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	oldID := m.CreateJob("https://example.com/old.git")
	m.SetJobResult(oldID, &ScanResultResponse{})

	runningID := m.CreateJob("https://example.com/running.git")
	m.UpdateJobStatus(runningID, StatusRunning, 10)

	current = current.Add(48 * time.Hour)
	freshID := m.CreateJob("https://example.com/fresh.git")
	m.SetJobError(freshID, "boom")

	removed := m.Cleanup(24 * time.Hour)

	// only terminal jobs past the age limit are swept
	assert.Equal(t, 1, removed)
	_, ok := m.GetJob(oldID)
	assert.False(t, ok)
	_, ok = m.GetJob(runningID)
	assert.True(t, ok)
	_, ok = m.GetJob(freshID)
	assert.True(t, ok)
}

func TestStaleJobs(t *testing.T) {
	m := newTestManager()
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	stuckID := m.CreateJob("https://example.com/stuck.git")
	m.UpdateJobStatus(stuckID, StatusRunning, 10)

	doneID := m.CreateJob("https://example.com/done.git")
	m.SetJobResult(doneID, &ScanResultResponse{})

	current = current.Add(5 * time.Minute)
	liveID := m.CreateJob("https://example.com/live.git")
	m.UpdateJobStatus(liveID, StatusRunning, 10)

	stale := m.StaleJobs(2 * time.Minute)
	assert.Equal(t, []string{stuckID}, stale)
}
