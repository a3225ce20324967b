package iac

import (
	"fmt"
	"path/filepath"
	"sort"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// CIScanner extracts pipeline definitions from GitHub Actions workflows and
// GitLab CI configurations.
type CIScanner struct{}

func (s *CIScanner) Name() string { return "ci" }

func (s *CIScanner) Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	if filepath.Base(path) == ".gitlab-ci.yml" {
		return s.scanGitLab(path, content)
	}
	return s.scanGitHub(path, content)
}

func (s *CIScanner) scanGitHub(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var workflow struct {
		Name string                 `yaml:"name"`
		Jobs map[string]interface{} `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(content, &workflow); err != nil {
		return nil, fmt.Errorf("invalid workflow file: %w", err)
	}

	name := workflow.Name
	if name == "" {
		name = filepath.Base(path)
	}
	jobs := make([]string, 0, len(workflow.Jobs))
	for job := range workflow.Jobs {
		jobs = append(jobs, job)
	}
	sort.Strings(jobs)

	return []inventory.InfrastructureComponent{{
		Type:          inventory.InfraCI,
		Name:          name,
		Service:       "github-actions",
		Subtype:       "workflow",
		Configuration: map[string]interface{}{"jobs": jobs},
		SourceFile:    path,
	}}, nil
}

func (s *CIScanner) scanGitLab(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var pipeline map[string]interface{}
	if err := yaml.Unmarshal(content, &pipeline); err != nil {
		return nil, fmt.Errorf("invalid gitlab-ci file: %w", err)
	}

	var stages []interface{}
	if raw, ok := pipeline["stages"].([]interface{}); ok {
		stages = raw
	}

	return []inventory.InfrastructureComponent{{
		Type:          inventory.InfraCI,
		Name:          ".gitlab-ci.yml",
		Service:       "gitlab-ci",
		Subtype:       "pipeline",
		Configuration: map[string]interface{}{"stages": stages},
		SourceFile:    path,
	}}, nil
}
