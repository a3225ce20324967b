// Package iac implements infrastructure-as-code scanners: handlers that
// extract infrastructure components from container, orchestration,
// provisioning and CI configuration files.
package iac

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/registry"
)

// Scanner extracts infrastructure components from one file format.
type Scanner interface {
	Name() string
	Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error)
}

// Manager is the infrastructure-scanner handler family over project files.
type Manager = registry.Manager[Scanner, inventory.InfrastructureComponent]

// NewRegistry builds the default infrastructure-scanner registry. Order is
// significant: compose files and CI configs are plain YAML, so their specific
// matchers must be registered before the generic Kubernetes YAML matcher.
func NewRegistry() *registry.Registry[Scanner] {
	r := registry.New[Scanner]()
	r.Register(registry.Any{
		registry.NameMatcher{"Dockerfile", "Containerfile"},
		registry.GlobMatcher{"Dockerfile.*", "*.dockerfile"},
	}, &DockerfileScanner{})
	r.Register(registry.NameMatcher{
		"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml",
	}, &ComposeScanner{})
	r.Register(registry.Any{
		registry.NameMatcher{".gitlab-ci.yml"},
		registry.PathGlobMatcher{".github/workflows/*.yml", ".github/workflows/*.yaml"},
	}, &CIScanner{})
	r.Register(registry.ExtMatcher{".tf"}, &TerraformScanner{})
	r.Register(registry.ExtMatcher{".yml", ".yaml"}, &KubernetesScanner{})
	return r
}

// NewManager creates the manager for the default infrastructure registry.
func NewManager(logger hclog.Logger) *Manager {
	return registry.NewManager("infrastructure-scanner", NewRegistry(),
		func(s Scanner, path string, content []byte) ([]inventory.InfrastructureComponent, error) {
			return s.Scan(path, content)
		}, logger)
}
