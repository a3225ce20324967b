// Package analyzers implements per-language source analyzers: import
// analyzers that surface third-party packages referenced by source code, and
// API-call analyzers that surface outbound HTTP calls.
package analyzers

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/registry"
)

// ImportAnalyzer extracts imported dependencies from one source language.
type ImportAnalyzer interface {
	Language() string
	Analyze(path string, content []byte) ([]inventory.Dependency, error)
}

// ImportManager is the import-analyzer handler family over project files.
type ImportManager = registry.Manager[ImportAnalyzer, inventory.Dependency]

// NewImportRegistry builds the default import-analyzer registry.
func NewImportRegistry() *registry.Registry[ImportAnalyzer] {
	r := registry.New[ImportAnalyzer]()
	r.Register(registry.ExtMatcher{".py"}, &PythonImportAnalyzer{})
	r.Register(registry.ExtMatcher{".js", ".jsx", ".ts", ".tsx", ".mjs"}, &JavaScriptImportAnalyzer{})
	r.Register(registry.ExtMatcher{".go"}, &GoImportAnalyzer{})
	return r
}

// NewImportManager creates the manager for the default import-analyzer registry.
func NewImportManager(logger hclog.Logger) *ImportManager {
	return registry.NewManager("import-analyzer", NewImportRegistry(),
		func(a ImportAnalyzer, path string, content []byte) ([]inventory.Dependency, error) {
			return a.Analyze(path, content)
		}, logger)
}

// PythonImportAnalyzer detects Python imports.
type PythonImportAnalyzer struct{}

func (a *PythonImportAnalyzer) Language() string { return "Python" }

var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+([A-Za-z_][\w.]*)`)
	pyFromImportRe = regexp.MustCompile(`^\s*from\s+([A-Za-z_][\w.]*)\s+import\b`)

	// Modules shipped with the interpreter; imports of these are not
	// third-party dependencies.
	pythonStdlib = map[string]bool{
		"os": true, "sys": true, "re": true, "json": true, "time": true,
		"datetime": true, "math": true, "random": true, "logging": true,
		"collections": true, "itertools": true, "functools": true,
		"typing": true, "pathlib": true, "subprocess": true, "threading": true,
		"asyncio": true, "unittest": true, "io": true, "abc": true,
		"copy": true, "enum": true, "dataclasses": true, "argparse": true,
		"urllib": true, "http": true, "socket": true, "string": true,
		"hashlib": true, "base64": true, "uuid": true, "csv": true,
		"shutil": true, "tempfile": true, "glob": true, "pickle": true,
	}
)

func (a *PythonImportAnalyzer) Analyze(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		var module string
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			module = m[1]
		} else if m := pyImportRe.FindStringSubmatch(line); m != nil {
			module = m[1]
		} else {
			continue
		}

		top := strings.SplitN(module, ".", 2)[0]
		if pythonStdlib[top] || seen[top] {
			continue
		}
		seen[top] = true
		deps = append(deps, inventory.Dependency{
			Name:       top,
			SourceFile: path,
			Type:       inventory.DependencyImported,
		})
	}

	return deps, scanner.Err()
}

// JavaScriptImportAnalyzer detects ES module imports and CommonJS requires.
type JavaScriptImportAnalyzer struct{}

func (a *JavaScriptImportAnalyzer) Language() string { return "JavaScript" }

var (
	jsImportRe  = regexp.MustCompile(`import\s+(?:[\w${},*\s]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

func (a *JavaScriptImportAnalyzer) Analyze(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency
	seen := make(map[string]bool)

	text := string(content)
	for _, re := range []*regexp.Regexp{jsImportRe, jsRequireRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := modulePackageName(m[1])
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			deps = append(deps, inventory.Dependency{
				Name:       name,
				SourceFile: path,
				Type:       inventory.DependencyImported,
			})
		}
	}

	return deps, nil
}

// modulePackageName reduces a module specifier to its package name.
// Relative and builtin ("node:") specifiers yield an empty name.
func modulePackageName(specifier string) string {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") ||
		strings.HasPrefix(specifier, "node:") {
		return ""
	}
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// GoImportAnalyzer detects Go imports.
type GoImportAnalyzer struct{}

func (a *GoImportAnalyzer) Language() string { return "Go" }

var goImportRe = regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"`)

func (a *GoImportAnalyzer) Analyze(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency
	seen := make(map[string]bool)
	inImportBlock := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "import ("):
			inImportBlock = true
			continue
		case inImportBlock && line == ")":
			inImportBlock = false
			continue
		}

		var importPath string
		if inImportBlock {
			if m := goImportRe.FindStringSubmatch(line); m != nil {
				importPath = m[1]
			}
		} else if strings.HasPrefix(line, "import ") {
			if m := goImportRe.FindStringSubmatch(strings.TrimPrefix(line, "import ")); m != nil {
				importPath = m[1]
			}
		}
		if importPath == "" {
			continue
		}

		// Standard library import paths have no dot in their first segment.
		if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
			continue
		}
		if seen[importPath] {
			continue
		}
		seen[importPath] = true
		deps = append(deps, inventory.Dependency{
			Name:       importPath,
			SourceFile: path,
			Type:       inventory.DependencyImported,
		})
	}

	return deps, scanner.Err()
}
