package iac

import (
	"bytes"
	"fmt"

	yamlv2 "gopkg.in/yaml.v2"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// KubernetesScanner extracts workloads and services from Kubernetes
// manifests. It is registered behind the compose and CI matchers, so any
// remaining YAML file lands here; files without apiVersion/kind markers are
// skipped without findings.
type KubernetesScanner struct{}

func (s *KubernetesScanner) Name() string { return "kubernetes" }

type manifestHeader struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name      string `yaml:"name"`
		Namespace string `yaml:"namespace"`
	} `yaml:"metadata"`
}

func (s *KubernetesScanner) Scan(path string, content []byte) ([]inventory.InfrastructureComponent, error) {
	var components []inventory.InfrastructureComponent

	// Manifests are frequently multi-document files.
	for _, doc := range bytes.Split(content, []byte("\n---")) {
		var header manifestHeader
		if err := yamlv2.Unmarshal(doc, &header); err != nil {
			continue // not YAML we understand, not a finding and not an error
		}
		if header.APIVersion == "" || header.Kind == "" {
			continue
		}

		component, err := s.scanDocument(doc, header, path)
		if err != nil {
			return nil, fmt.Errorf("manifest %s (%s): %w", header.Metadata.Name, header.Kind, err)
		}
		components = append(components, component)
	}

	return components, nil
}

func (s *KubernetesScanner) scanDocument(doc []byte, header manifestHeader, path string) (inventory.InfrastructureComponent, error) {
	component := inventory.InfrastructureComponent{
		Type:          inventory.InfraOrchestration,
		Name:          header.Metadata.Name,
		Service:       "kubernetes",
		Subtype:       header.Kind,
		Configuration: map[string]interface{}{"api_version": header.APIVersion},
		SourceFile:    path,
	}
	if header.Metadata.Namespace != "" {
		component.Configuration["namespace"] = header.Metadata.Namespace
	}

	switch header.Kind {
	case "Deployment", "StatefulSet", "DaemonSet":
		var deployment appsv1.Deployment
		if err := yaml.Unmarshal(doc, &deployment); err != nil {
			return component, err
		}
		var images []string
		for _, container := range deployment.Spec.Template.Spec.Containers {
			images = append(images, container.Image)
		}
		if len(images) > 0 {
			component.Configuration["images"] = images
		}
		if deployment.Spec.Replicas != nil {
			component.Configuration["replicas"] = int(*deployment.Spec.Replicas)
		}
	case "Service":
		var service corev1.Service
		if err := yaml.Unmarshal(doc, &service); err != nil {
			return component, err
		}
		var ports []int
		for _, port := range service.Spec.Ports {
			ports = append(ports, int(port.Port))
		}
		if len(ports) > 0 {
			component.Configuration["ports"] = ports
		}
		if service.Spec.Type != "" {
			component.Configuration["service_type"] = string(service.Spec.Type)
		}
	}

	return component, nil
}
