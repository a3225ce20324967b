package parsers

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// CargoParser handles Cargo.toml manifests.
type CargoParser struct{}

func (p *CargoParser) PackageManager() string { return "cargo" }

var (
	cargoSectionRe = regexp.MustCompile(`^\[([^\]]+)\]`)
	cargoSimpleRe  = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*=\s*"([^"]+)"`)
	cargoTableRe   = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*=\s*\{.*version\s*=\s*"([^"]+)"`)
)

func (p *CargoParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency
	inDependencies := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := cargoSectionRe.FindStringSubmatch(line); m != nil {
			section := m[1]
			inDependencies = section == "dependencies" || section == "dev-dependencies" ||
				strings.HasSuffix(section, ".dependencies")
			continue
		}
		if !inDependencies || line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var name, version string
		if m := cargoTableRe.FindStringSubmatch(line); m != nil {
			name, version = m[1], m[2]
		} else if m := cargoSimpleRe.FindStringSubmatch(line); m != nil {
			name, version = m[1], m[2]
		} else {
			continue
		}

		deps = append(deps, inventory.Dependency{
			Name:       name,
			Version:    version,
			SourceFile: path,
			Type:       inventory.DependencyDeclared,
		})
	}

	return deps, scanner.Err()
}
