package iac

import (
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// ComposeScanner extracts services from docker-compose files.
type ComposeScanner struct{}

func (s *ComposeScanner) Name() string { return "docker-compose" }

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image     string   `yaml:"image"`
	Build     string   `yaml:"build"`
	Ports     []string `yaml:"ports"`
	DependsOn []string `yaml:"depends_on"`
}

func (s *ComposeScanner) Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var file composeFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("invalid compose file: %w", err)
	}

	names := make([]string, 0, len(file.Services))
	for name := range file.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	var components []inventory.InfrastructureComponent
	for _, name := range names {
		service := file.Services[name]
		configuration := map[string]interface{}{}
		if service.Image != "" {
			configuration["image"] = service.Image
		}
		if service.Build != "" {
			configuration["build"] = service.Build
		}
		if len(service.Ports) > 0 {
			configuration["ports"] = service.Ports
		}
		if len(service.DependsOn) > 0 {
			configuration["depends_on"] = service.DependsOn
		}
		components = append(components, inventory.InfrastructureComponent{
			Type:          inventory.InfraContainer,
			Name:          name,
			Service:       "docker-compose",
			Subtype:       "service",
			Configuration: configuration,
			SourceFile:    path,
		})
	}

	return components, nil
}
