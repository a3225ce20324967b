package iac

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// TerraformScanner extracts resource and provider blocks from .tf files.
type TerraformScanner struct{}

func (s *TerraformScanner) Name() string { return "terraform" }

var (
	tfResourceRe = regexp.MustCompile(`^\s*resource\s+"([\w-]+)"\s+"([\w-]+)"`)
	tfProviderRe = regexp.MustCompile(`^\s*provider\s+"([\w-]+)"`)
)

func (s *TerraformScanner) Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var components []inventory.InfrastructureComponent

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if m := tfResourceRe.FindStringSubmatch(line); m != nil {
			components = append(components, inventory.InfrastructureComponent{
				Type:    inventory.InfraProvisioning,
				Name:    m[2],
				Service: resourceProvider(m[1]),
				Subtype: m[1],
				Configuration: map[string]interface{}{
					"resource_type": m[1],
				},
				SourceFile: path,
			})
		} else if m := tfProviderRe.FindStringSubmatch(line); m != nil {
			components = append(components, inventory.InfrastructureComponent{
				Type:       inventory.InfraProvisioning,
				Name:       m[1],
				Service:    m[1],
				Subtype:    "provider",
				SourceFile: path,
			})
		}
	}

	return components, scanner.Err()
}

// resourceProvider derives the provider from a resource type prefix,
// e.g. "aws_s3_bucket" belongs to "aws".
func resourceProvider(resourceType string) string {
	if idx := strings.Index(resourceType, "_"); idx > 0 {
		return resourceType[:idx]
	}
	return resourceType
}
