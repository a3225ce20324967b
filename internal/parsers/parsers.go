// Package parsers implements dependency-file parsers: handlers that extract
// declared dependencies from package-manager manifest files.
package parsers

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/registry"
)

// Parser extracts declared dependencies from one manifest format.
type Parser interface {
	// PackageManager returns the ecosystem the manifest belongs to, e.g. "pip".
	PackageManager() string
	Parse(path string, content []byte) ([]inventory.Dependency, error)
}

// Manager is the dependency-parser handler family over project files.
type Manager = registry.Manager[Parser, inventory.Dependency]

// NewRegistry builds the default dependency-parser registry. Registration
// order matters: the requirements glob is registered after the exact name so
// the canonical file resolves to the same handler.
func NewRegistry() *registry.Registry[Parser] {
	r := registry.New[Parser]()
	r.Register(registry.Any{
		registry.NameMatcher{"requirements.txt"},
		registry.GlobMatcher{"requirements-*.txt", "requirements_*.txt"},
		registry.PathGlobMatcher{"requirements/*.txt"},
	}, &RequirementsParser{})
	r.Register(registry.NameMatcher{"package.json"}, &PackageJSONParser{})
	r.Register(registry.NameMatcher{"go.mod"}, &GoModParser{})
	r.Register(registry.NameMatcher{"build.sbt"}, &SbtParser{})
	r.Register(registry.NameMatcher{"pom.xml"}, &PomParser{})
	r.Register(registry.NameMatcher{"Gemfile"}, &GemfileParser{})
	r.Register(registry.NameMatcher{"Cargo.toml"}, &CargoParser{})
	return r
}

// NewManager creates the manager for the default dependency-parser registry.
func NewManager(logger hclog.Logger) *Manager {
	return registry.NewManager("dependency-parser", NewRegistry(),
		func(p Parser, path string, content []byte) ([]inventory.Dependency, error) {
			return p.Parse(path, content)
		}, logger)
}
