// Package inventory defines the findings produced by a project scan.
package inventory

// DependencyType describes how a dependency reference was discovered.
type DependencyType string

const (
	DependencyDeclared DependencyType = "declared" // listed in a manifest file
	DependencyImported DependencyType = "imported" // referenced by a source import
	DependencyUnknown  DependencyType = "unknown"
)

// Dependency is a third-party package referenced by the scanned project.
// Identity is (Name, SourceFile); duplicates across files are kept and
// deduplicated only at reporting time.
type Dependency struct {
	Name       string         `json:"name"`
	Version    string         `json:"version,omitempty"`
	SourceFile string         `json:"source_file"`
	Type       DependencyType `json:"dependency_type"`
}

// AuthType classifies the authentication scheme of an outbound API call.
type AuthType string

const (
	AuthNone    AuthType = "none"
	AuthBasic   AuthType = "basic"
	AuthToken   AuthType = "token"
	AuthOAuth   AuthType = "oauth"
	AuthAPIKey  AuthType = "api_key"
	AuthUnknown AuthType = "unknown"
)

// StatusCannotDetermine is the default APICall status when no classification
// rule resolves a verdict.
const StatusCannotDetermine = "cannot_determine"

// APICall is an outbound HTTP call detected in source code.
type APICall struct {
	URL        string   `json:"url"`
	HTTPMethod string   `json:"http_method,omitempty"`
	AuthType   AuthType `json:"auth_type"`
	SourceFile string   `json:"source_file,omitempty"`
	LineNumber int      `json:"line_number,omitempty"`
	Status     string   `json:"status"`
}

// InfrastructureType describes the family of an infrastructure-as-code component.
type InfrastructureType string

const (
	InfraContainer     InfrastructureType = "container"
	InfraOrchestration InfrastructureType = "orchestration"
	InfraProvisioning  InfrastructureType = "provisioning"
	InfraCI            InfrastructureType = "ci"
)

// InfrastructureComponent is a unit of infrastructure declared in the project.
type InfrastructureComponent struct {
	Type          InfrastructureType     `json:"type"`
	Name          string                 `json:"name"`
	Service       string                 `json:"service"`
	Subtype       string                 `json:"subtype,omitempty"`
	Configuration map[string]interface{} `json:"configuration,omitempty"`
	SourceFile    string                 `json:"source_file"`
}

// ScanResult is the aggregate outcome of one project scan. It is owned by the
// orchestrator invocation that produced it and is immutable once returned.
type ScanResult struct {
	Languages       map[string]float64        `json:"languages"`
	PackageManagers []string                  `json:"package_managers"`
	DependencyFiles []string                  `json:"dependency_files"`
	Dependencies    []Dependency              `json:"dependencies"`
	APICalls        []APICall                 `json:"api_calls"`
	Infrastructure  []InfrastructureComponent `json:"infrastructure"`
	Categories      map[string][]Dependency   `json:"categories,omitempty"`
	CategoryOrder   []string                  `json:"category_order,omitempty"`
	Errors          []string                  `json:"errors"`
}
