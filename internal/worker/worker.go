// Package worker executes one scan job end-to-end: clone, scan, finalize.
package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/categorizer"
	"github.com/scan-io-git/depscout/internal/git"
	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/jobs"
	"github.com/scan-io-git/depscout/pkg/shared/files"
)

// Cloner is the git collaborator contract the worker drives.
type Cloner interface {
	Clone(ctx context.Context, cloneURL, targetFolder string, onProgress git.ProgressFunc) (string, error)
}

// ProjectScanner is the orchestrator contract the worker drives.
type ProjectScanner interface {
	ScanProject(path string) (*inventory.ScanResult, error)
}

// Progress milestones. Clone progress advances within its band as bytes
// arrive; the band cap keeps clone reports from overtaking later stages.
const (
	progressCloneStart = 5
	progressCloneCap   = 60
	progressScanning   = 70
	progressAssembling = 90
)

// Worker runs scan jobs against a shared job store. Safe for concurrent use;
// each job is owned by exactly one Run invocation.
type Worker struct {
	jobs        *jobs.Manager
	cloner      Cloner
	scanner     ProjectScanner
	categorizer *categorizer.Categorizer
	workDir     string
	logger      hclog.Logger
}

// New creates a worker. workDir is the parent directory for per-job clone
// destinations; empty means the system temp directory.
func New(jobManager *jobs.Manager, cloner Cloner, scanner ProjectScanner, cat *categorizer.Categorizer, workDir string, logger hclog.Logger) *Worker {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Worker{
		jobs:        jobManager,
		cloner:      cloner,
		scanner:     scanner,
		categorizer: cat,
		workDir:     workDir,
		logger:      logger,
	}
}

// Run drives the job to a terminal state. Every fault, including a panic in
// a handler, is converted into a job failure so the store is never left
// RUNNING by an unhandled error.
func (w *Worker) Run(ctx context.Context, jobID, gitURL string) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("worker panicked", "job_id", jobID, "panic", r)
			w.jobs.SetJobError(jobID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	w.jobs.UpdateJobStatus(jobID, jobs.StatusRunning, 0)

	if err := files.CreateFolderIfNotExists(w.workDir); err != nil {
		w.logger.Error("failed to prepare work directory", "job_id", jobID, "path", w.workDir, "error", err)
		w.jobs.SetJobError(jobID, fmt.Sprintf("workdir setup failed: %v", err))
		return
	}

	targetFolder := filepath.Join(w.workDir, "depscout-job-"+jobID)
	defer func() {
		if err := os.RemoveAll(targetFolder); err != nil {
			w.logger.Warn("failed to remove clone folder", "job_id", jobID, "path", targetFolder, "error", err)
		}
	}()

	w.jobs.UpdateJobStatus(jobID, jobs.StatusRunning, progressCloneStart)
	path, err := w.cloner.Clone(ctx, gitURL, targetFolder, func(bytesTransferred int64) {
		w.jobs.UpdateJobStatus(jobID, jobs.StatusRunning, cloneProgress(bytesTransferred))
	})
	if err != nil {
		w.jobs.SetJobError(jobID, fmt.Sprintf("clone failed: %v", err))
		return
	}

	w.jobs.UpdateJobStatus(jobID, jobs.StatusRunning, progressScanning)
	result, err := w.scanner.ScanProject(path)
	if err != nil {
		w.jobs.SetJobError(jobID, fmt.Sprintf("scan failed: %v", err))
		return
	}

	w.jobs.UpdateJobStatus(jobID, jobs.StatusRunning, progressAssembling)
	w.jobs.SetJobResult(jobID, w.buildResponse(gitURL, result))
}

// cloneProgress maps transferred bytes into the clone progress band. The
// remote size is unknown, so one percent per transferred megabyte is the
// advisory heuristic, capped at the band limit.
func cloneProgress(bytesTransferred int64) int {
	percent := progressCloneStart + int(bytesTransferred/(1024*1024))
	if percent > progressCloneCap {
		return progressCloneCap
	}
	return percent
}

// buildResponse reduces a full scan result to the remote-API contract: a
// category-presence map over the configured taxonomy.
func (w *Worker) buildResponse(gitURL string, result *inventory.ScanResult) *jobs.ScanResultResponse {
	response := &jobs.ScanResultResponse{
		GitURL:       gitURL,
		Dependencies: make(map[string]bool),
	}

	if w.categorizer != nil {
		categorized := result.Categories
		if categorized == nil {
			categorized = w.categorizer.CategorizeDependencies(result.Dependencies)
		}
		for _, category := range w.categorizer.Order() {
			response.Dependencies[category] = len(categorized[category]) > 0
		}
	} else {
		response.Dependencies[categorizer.Uncategorized] = len(result.Dependencies) > 0
	}

	return response
}
