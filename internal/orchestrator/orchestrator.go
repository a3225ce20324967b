// Package orchestrator composes language detection, the four handler-family
// managers and the categorizer into one end-to-end project scan.
package orchestrator

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/analyzers"
	"github.com/scan-io-git/depscout/internal/categorizer"
	"github.com/scan-io-git/depscout/internal/iac"
	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/parsers"
	"github.com/scan-io-git/depscout/pkg/shared/files"
)

// DefaultExcludes are directories that never contribute findings.
var DefaultExcludes = []string{
	".git", "node_modules", "vendor", "__pycache__", ".venv", "venv",
	"dist", "build", "target", ".idea", ".vscode",
}

// Options configures an Orchestrator.
type Options struct {
	// Excludes extends DefaultExcludes with caller-provided patterns.
	Excludes []string
	// Categorizer is optional; without it the scan result carries no
	// category buckets.
	Categorizer *categorizer.Categorizer
}

// Orchestrator owns the managers of the four handler families.
type Orchestrator struct {
	dependencyManager *parsers.Manager
	importManager     *analyzers.ImportManager
	apiCallManager    *analyzers.APICallManager
	infraManager      *iac.Manager
	categorizer       *categorizer.Categorizer
	excludes          []string
	logger            hclog.Logger
}

// New constructs an orchestrator with the default handler registries.
func New(logger hclog.Logger, opts Options) *Orchestrator {
	excludes := make([]string, 0, len(DefaultExcludes)+len(opts.Excludes))
	excludes = append(excludes, DefaultExcludes...)
	excludes = append(excludes, opts.Excludes...)

	return &Orchestrator{
		dependencyManager: parsers.NewManager(logger),
		importManager:     analyzers.NewImportManager(logger),
		apiCallManager:    analyzers.NewAPICallManager(logger),
		infraManager:      iac.NewManager(logger),
		categorizer:       opts.Categorizer,
		excludes:          excludes,
		logger:            logger,
	}
}

// ScanProject runs the full pipeline over the project rooted at path. All
// stages are best-effort: per-file and per-stage failures are collected into
// the result's Errors instead of aborting the scan. The returned error is
// reserved for an unreadable project root.
func (o *Orchestrator) ScanProject(path string) (*inventory.ScanResult, error) {
	result := &inventory.ScanResult{
		Languages: map[string]float64{},
		Errors:    []string{},
	}

	projectFiles, err := files.ListProjectFiles(path, o.excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate project files: %w", err)
	}
	o.logger.Debug("project files enumerated", "path", path, "count", len(projectFiles))

	result.Languages = detectLanguages(projectFiles)
	o.detectPackageManagers(projectFiles, result)

	dependencyFindings, errs := o.dependencyManager.Process(path, projectFiles)
	result.Errors = append(result.Errors, errs...)
	for _, file := range result.DependencyFiles {
		result.Dependencies = append(result.Dependencies, dependencyFindings[file]...)
	}

	importFindings, errs := o.importManager.Process(path, projectFiles)
	result.Errors = append(result.Errors, errs...)
	for _, file := range sortedKeys(importFindings) {
		result.Dependencies = append(result.Dependencies, importFindings[file]...)
	}

	apiCallFindings, errs := o.apiCallManager.Process(path, projectFiles)
	result.Errors = append(result.Errors, errs...)
	for _, file := range sortedKeys(apiCallFindings) {
		result.APICalls = append(result.APICalls, apiCallFindings[file]...)
	}

	infraFindings, errs := o.infraManager.Process(path, projectFiles)
	result.Errors = append(result.Errors, errs...)
	for _, file := range sortedKeys(infraFindings) {
		result.Infrastructure = append(result.Infrastructure, infraFindings[file]...)
	}

	if o.categorizer != nil {
		result.Categories = o.categorizer.CategorizeDependencies(result.Dependencies)
		result.CategoryOrder = o.categorizer.Order()
	}

	o.logger.Info("project scan completed",
		"path", path,
		"dependencies", len(result.Dependencies),
		"api_calls", len(result.APICalls),
		"infrastructure", len(result.Infrastructure),
		"errors", len(result.Errors))

	return result, nil
}

// detectPackageManagers records which dependency files the parser registry
// recognizes and the set of package managers they imply. Dependency files
// keep enumeration order; package managers are sorted for stable output.
func (o *Orchestrator) detectPackageManagers(projectFiles []string, result *inventory.ScanResult) {
	managers := make(map[string]bool)
	for _, file := range projectFiles {
		parser, ok := o.dependencyManager.Registry().Find(file)
		if !ok {
			continue
		}
		result.DependencyFiles = append(result.DependencyFiles, file)
		managers[parser.PackageManager()] = true
	}
	for manager := range managers {
		result.PackageManagers = append(result.PackageManagers, manager)
	}
	sort.Strings(result.PackageManagers)
}

func sortedKeys[F any](findings map[string][]F) []string {
	keys := make([]string, 0, len(findings))
	for key := range findings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
