package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// SbtParser handles sbt build definitions. A dependency declared as
// `"org.example" %% "lib" % "1.0.0"` yields the name "org.example:lib".
type SbtParser struct{}

func (p *SbtParser) PackageManager() string { return "sbt" }

var sbtDependencyRe = regexp.MustCompile(`"([^"]+)"\s*%{1,2}\s*"([^"]+)"\s*%\s*"([^"]+)"`)

func (p *SbtParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var deps []inventory.Dependency

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		for _, m := range sbtDependencyRe.FindAllStringSubmatch(scanner.Text(), -1) {
			deps = append(deps, inventory.Dependency{
				Name:       fmt.Sprintf("%s:%s", m[1], m[2]),
				Version:    m[3],
				SourceFile: path,
				Type:       inventory.DependencyDeclared,
			})
		}
	}

	return deps, scanner.Err()
}
