package parsers

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// PackageJSONParser handles npm package.json manifests.
type PackageJSONParser struct{}

func (p *PackageJSONParser) PackageManager() string { return "npm" }

func (p *PackageJSONParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("invalid package.json: %w", err)
	}

	var deps []inventory.Dependency
	for _, section := range []map[string]string{manifest.Dependencies, manifest.DevDependencies} {
		names := make([]string, 0, len(section))
		for name := range section {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			deps = append(deps, inventory.Dependency{
				Name:       name,
				Version:    section[name],
				SourceFile: path,
				Type:       inventory.DependencyDeclared,
			})
		}
	}
	return deps, nil
}
