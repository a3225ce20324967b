package parsers

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// GoModParser handles go.mod files.
type GoModParser struct{}

func (p *GoModParser) PackageManager() string { return "gomod" }

func (p *GoModParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency
	inRequireBlock := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "require ("):
			inRequireBlock = true
			continue
		case inRequireBlock && line == ")":
			inRequireBlock = false
			continue
		}

		var fields []string
		if inRequireBlock {
			fields = strings.Fields(line)
		} else if strings.HasPrefix(line, "require ") {
			fields = strings.Fields(strings.TrimPrefix(line, "require "))
		} else {
			continue
		}
		if len(fields) < 2 || strings.HasPrefix(fields[0], "//") {
			continue
		}

		deps = append(deps, inventory.Dependency{
			Name:       fields[0],
			Version:    fields[1],
			SourceFile: path,
			Type:       inventory.DependencyDeclared,
		})
	}

	return deps, scanner.Err()
}
