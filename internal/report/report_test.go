package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/internal/inventory"
)

func sampleResult() *inventory.ScanResult {
	return &inventory.ScanResult{
		Languages:       map[string]float64{"Python": 80, "JavaScript": 20},
		PackageManagers: []string{"npm", "pip"},
		DependencyFiles: []string{"requirements.txt", "package.json"},
		Dependencies: []inventory.Dependency{
			{Name: "requests", Version: "2.31.0", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
			{Name: "pika", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
		},
		APICalls: []inventory.APICall{
			{URL: "https://api.example.com/users", HTTPMethod: "GET", AuthType: inventory.AuthNone,
				SourceFile: "app.py", LineNumber: 3, Status: inventory.StatusCannotDetermine},
		},
		Infrastructure: []inventory.InfrastructureComponent{
			{Type: inventory.InfraContainer, Name: "python", Service: "docker", Subtype: "base-image", SourceFile: "Dockerfile"},
		},
		Categories: map[string][]inventory.Dependency{
			"Messaging":     {{Name: "pika", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared}},
			"Uncategorized": {{Name: "requests", Version: "2.31.0", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared}},
		},
		CategoryOrder: []string{"Messaging", "Uncategorized"},
		Errors:        []string{"dependency-parser: failed to process package.json: invalid package.json"},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	original := sampleResult()

	require.NoError(t, WriteJSON(original, path))

	restored, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestReadJSONMissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "requests")
	assert.Contains(t, html, "https://api.example.com/users")
	assert.Contains(t, html, "Messaging")
	assert.Contains(t, html, "Dockerfile")
}

func TestWriteSARIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sarif")
	require.NoError(t, WriteSARIF(sampleResult(), []string{"Messaging"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	sarif := string(data)

	assert.Contains(t, sarif, "restricted-dependency/Messaging")
	assert.Contains(t, sarif, "pika")
	// dependencies outside restricted categories produce no results
	assert.False(t, strings.Contains(sarif, `"requests"`))
}

func TestWriteSARIFNoRestrictedCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sarif")
	require.NoError(t, WriteSARIF(sampleResult(), nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "depscout")
}
