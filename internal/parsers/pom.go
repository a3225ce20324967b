package parsers

import (
	"encoding/xml"
	"fmt"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// PomParser handles Maven pom.xml manifests.
type PomParser struct{}

func (p *PomParser) PackageManager() string { return "maven" }

type pomProject struct {
	Dependencies struct {
		Dependency []pomDependency `xml:"dependency"`
	} `xml:"dependencies"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

func (p *PomParser) Parse(path string, content []byte) ([]inventory.Dependency, error) {
	var project pomProject
	if err := xml.Unmarshal(content, &project); err != nil {
		return nil, fmt.Errorf("invalid pom.xml: %w", err)
	}

	var deps []inventory.Dependency
	for _, d := range project.Dependencies.Dependency {
		if d.GroupID == "" || d.ArtifactID == "" {
			continue
		}
		deps = append(deps, inventory.Dependency{
			Name:       fmt.Sprintf("%s:%s", d.GroupID, d.ArtifactID),
			Version:    d.Version,
			SourceFile: path,
			Type:       inventory.DependencyDeclared,
		})
	}
	return deps, nil
}
