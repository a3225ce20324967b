package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Manager drives one handler family over a set of project files. Files with
// no matching handler are silently skipped. A failing handler contributes an
// empty result and one collected error message; processing of the remaining
// files always continues.
type Manager[H any, F any] struct {
	name     string
	registry *Registry[H]
	run      func(handler H, path string, content []byte) ([]F, error)
	logger   hclog.Logger
}

// NewManager creates a manager for a handler family. run invokes one handler
// against one file's content.
func NewManager[H any, F any](name string, reg *Registry[H], run func(handler H, path string, content []byte) ([]F, error), logger hclog.Logger) *Manager[H, F] {
	return &Manager[H, F]{
		name:     name,
		registry: reg,
		run:      run,
		logger:   logger,
	}
}

// Registry exposes the manager's registry for detection queries.
func (m *Manager[H, F]) Registry() *Registry[H] {
	return m.registry
}

// Process dispatches each file (relative to root) to its handler and returns
// per-file findings plus collected non-fatal error messages.
func (m *Manager[H, F]) Process(root string, paths []string) (map[string][]F, []string) {
	findings := make(map[string][]F)
	var errors []string

	for _, path := range paths {
		handler, ok := m.registry.Find(path)
		if !ok {
			continue
		}

		content, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			m.logger.Warn("failed to read file", "manager", m.name, "file", path, "error", err)
			errors = append(errors, fmt.Sprintf("%s: failed to read %s: %v", m.name, path, err))
			findings[path] = nil
			continue
		}

		result, err := m.run(handler, path, content)
		if err != nil {
			m.logger.Warn("handler failed", "manager", m.name, "file", path, "error", err)
			errors = append(errors, fmt.Sprintf("%s: failed to process %s: %v", m.name, path, err))
			findings[path] = nil
			continue
		}
		findings[path] = result
	}

	return findings, errors
}
