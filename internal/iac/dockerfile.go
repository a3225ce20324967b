package iac

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// DockerfileScanner extracts base images and exposed ports from Dockerfiles.
type DockerfileScanner struct{}

func (s *DockerfileScanner) Name() string { return "dockerfile" }

func (s *DockerfileScanner) Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var components []inventory.InfrastructureComponent
	var ports []string

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "FROM":
			image := fields[1]
			if strings.EqualFold(image, "scratch") {
				continue
			}
			name, tag := splitImageTag(image)
			configuration := map[string]interface{}{"image": image}
			if tag != "" {
				configuration["tag"] = tag
			}
			// Multi-stage builds alias stages with AS.
			if len(fields) >= 4 && strings.EqualFold(fields[2], "AS") {
				configuration["stage"] = fields[3]
			}
			components = append(components, inventory.InfrastructureComponent{
				Type:          inventory.InfraContainer,
				Name:          name,
				Service:       "docker",
				Subtype:       "base-image",
				Configuration: configuration,
				SourceFile:    path,
			})
		case "EXPOSE":
			ports = append(ports, fields[1:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(ports) > 0 && len(components) > 0 {
		components[len(components)-1].Configuration["ports"] = ports
	}

	return components, nil
}

func splitImageTag(image string) (string, string) {
	if idx := strings.LastIndex(image, ":"); idx > 0 && !strings.Contains(image[idx:], "/") {
		return image[:idx], image[idx+1:]
	}
	return image, ""
}
