package parsers

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// RequirementsParser handles pip requirements files.
type RequirementsParser struct{}

func (p *RequirementsParser) PackageManager() string { return "pip" }

var requirementRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?\s*(==|>=|<=|~=|!=|>|<)?\s*([A-Za-z0-9.*+!_-]+)?`)

func (p *RequirementsParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if idx := strings.Index(line, "#"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		m := requirementRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		dep := inventory.Dependency{
			Name:       m[1],
			SourceFile: path,
			Type:       inventory.DependencyDeclared,
		}
		// Only pinned versions are recorded; ranges stay empty.
		if m[3] == "==" {
			dep.Version = m[4]
		}
		deps = append(deps, dep)
	}

	return deps, scanner.Err()
}
