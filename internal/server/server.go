// Package server exposes the asynchronous scan service: job submission,
// polling endpoints and health, protected by HTTP basic auth.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/scan-io-git/depscout/internal/jobs"
)

// Version is the API version reported by the health endpoint.
var Version = "0.1.0"

// Credentials are the basic-auth credentials protecting the API.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials reads API credentials from the environment, optionally
// loading an env file first. Missing credentials are a configuration error:
// the service never runs unauthenticated.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Credentials{}, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	} else {
		// Best-effort load of a local .env; absence is fine.
		_ = godotenv.Load()
	}

	creds := Credentials{
		Username: os.Getenv("DEPSCOUT_API_USERNAME"),
		Password: os.Getenv("DEPSCOUT_API_PASSWORD"),
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("DEPSCOUT_API_USERNAME and DEPSCOUT_API_PASSWORD must be set")
	}
	return creds, nil
}

// RunFunc launches the background execution of one accepted job.
type RunFunc func(jobID, gitURL string)

// Server holds dependencies for the API endpoints.
type Server struct {
	jobs   *jobs.Manager
	runJob RunFunc
	creds  Credentials
	logger hclog.Logger
}

// New creates a server around a job store. runJob is invoked once per
// accepted submission, in a goroutine owned by the handler.
func New(jobManager *jobs.Manager, runJob RunFunc, creds Credentials, logger hclog.Logger) *Server {
	return &Server{
		jobs:   jobManager,
		runJob: runJob,
		creds:  creds,
		logger: logger,
	}
}

// Handler returns the routed and authenticated HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("/jobs/", s.handleJobs) // /jobs/{id} and /jobs/{id}/results
	mux.HandleFunc("/health", s.handleHealth)
	return s.basicAuth(mux)
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	s.logger.Info("server exited gracefully")
	return nil
}

// basicAuth enforces credentials on every endpoint, health included.
func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != s.creds.Username || password != s.creds.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="depscout"`)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
