package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scan-io-git/depscout/internal/jobs"
	"github.com/scan-io-git/depscout/pkg/shared/vcsurl"
)

type scanRequest struct {
	GitURL string `json:"git_url"`
}

type scanResponse struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// handleScan accepts a repository URL and registers an asynchronous scan job.
// POST /scan {"git_url": "..."} -> 201 {job_id, status, created_at}
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request body"})
		return
	}
	defer r.Body.Close()

	if err := validateGitURL(req.GitURL); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	jobID := s.jobs.CreateJob(req.GitURL)
	job, _ := s.jobs.GetJob(jobID)
	s.logger.Info("scan job accepted", "job_id", jobID, "git_url", req.GitURL)

	go s.runJob(jobID, req.GitURL)

	writeJSON(w, http.StatusCreated, scanResponse{
		JobID:     jobID,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt,
	})
}

// handleJobs serves job status and results:
// GET /jobs/{id} and GET /jobs/{id}/results.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleJobStatus(w, parts[0])
	case len(parts) == 2 && parts[1] == "results":
		s.handleJobResults(w, parts[0])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (s *Server) handleJobStatus(w http.ResponseWriter, jobID string) {
	job, ok := s.jobs.GetJob(jobID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobResults(w http.ResponseWriter, jobID string) {
	job, ok := s.jobs.GetJob(jobID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	switch job.Status {
	case jobs.StatusCompleted:
		writeJSON(w, http.StatusOK, job.Result)
	case jobs.StatusFailed:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "job failed: " + job.ErrorMessage,
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "job is not completed yet: " + string(job.Status),
		})
	}
}

// handleHealth reports service health for the authenticated caller.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"user":      s.creds.Username,
	})
}

// validateGitURL enforces the URL-format contract for submissions.
func validateGitURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("git_url is required")
	}
	if err := vcsurl.Validate(rawURL); err != nil {
		return fmt.Errorf("invalid git_url: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
