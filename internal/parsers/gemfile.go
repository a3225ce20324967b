package parsers

import (
	"bufio"
	"bytes"
	"regexp"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// GemfileParser handles Bundler Gemfiles.
type GemfileParser struct{}

func (p *GemfileParser) PackageManager() string { return "bundler" }

var gemRe = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

func (p *GemfileParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		m := gemRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		deps = append(deps, inventory.Dependency{
			Name:       m[1],
			Version:    m[2],
			SourceFile: path,
			Type:       inventory.DependencyDeclared,
		})
	}

	return deps, scanner.Err()
}
