package analyzers

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/internal/registry"
)

// APICallAnalyzer extracts outbound API calls from one source language.
type APICallAnalyzer interface {
	Language() string
	Analyze(path string, content []byte) ([]inventory.APICall, error)
}

// APICallManager is the API-call-analyzer handler family over project files.
type APICallManager = registry.Manager[APICallAnalyzer, inventory.APICall]

// NewAPICallRegistry builds the default API-call-analyzer registry.
func NewAPICallRegistry() *registry.Registry[APICallAnalyzer] {
	r := registry.New[APICallAnalyzer]()
	r.Register(registry.ExtMatcher{".py"}, &PythonAPICallAnalyzer{})
	r.Register(registry.ExtMatcher{".js", ".jsx", ".ts", ".tsx", ".mjs"}, &JavaScriptAPICallAnalyzer{})
	r.Register(registry.ExtMatcher{".go"}, &GoAPICallAnalyzer{})
	return r
}

// NewAPICallManager creates the manager for the default API-call registry.
func NewAPICallManager(logger hclog.Logger) *APICallManager {
	return registry.NewManager("apicall-analyzer", NewAPICallRegistry(),
		func(a APICallAnalyzer, path string, content []byte) ([]inventory.APICall, error) {
			return a.Analyze(path, content)
		}, logger)
}

// callPattern captures a call site: the regex yields the URL in group
// "url" and optionally a method name in group "method".
type callPattern struct {
	re     *regexp.Regexp
	method string // fixed method when the pattern implies one
}

// scanCalls runs call patterns line by line so call sites carry line numbers.
// The authentication heuristic inspects a window of lines below the call for
// auth material passed alongside the request.
func scanCalls(path string, content []byte, patterns []callPattern) []inventory.APICall {
	var calls []inventory.APICall

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	for i, line := range lines {
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			method := p.method
			url := m[len(m)-1]
			if method == "" {
				// First non-empty capture before the URL names the verb.
				for _, group := range m[1 : len(m)-1] {
					if group != "" {
						method = strings.ToUpper(group)
						break
					}
				}
			}

			call := inventory.APICall{
				URL:        url,
				HTTPMethod: method,
				AuthType:   detectAuthType(lines, i),
				SourceFile: path,
				LineNumber: i + 1,
				Status:     inventory.StatusCannotDetermine,
			}
			calls = append(calls, call)
		}
	}

	return calls
}

// authWindow is how many lines below a call site the auth heuristic inspects.
const authWindow = 5

func detectAuthType(lines []string, callLine int) inventory.AuthType {
	end := callLine + authWindow
	if end >= len(lines) {
		end = len(lines) - 1
	}
	window := strings.ToLower(strings.Join(lines[callLine:end+1], "\n"))

	switch {
	case strings.Contains(window, "oauth"):
		return inventory.AuthOAuth
	case strings.Contains(window, "bearer"):
		return inventory.AuthToken
	case strings.Contains(window, "basic "), strings.Contains(window, "basicauth"),
		strings.Contains(window, "auth=("):
		return inventory.AuthBasic
	case strings.Contains(window, "api_key"), strings.Contains(window, "apikey"),
		strings.Contains(window, "x-api-key"):
		return inventory.AuthAPIKey
	case strings.Contains(window, "authorization"), strings.Contains(window, "token"):
		return inventory.AuthUnknown
	default:
		return inventory.AuthNone
	}
}

// PythonAPICallAnalyzer detects requests/httpx-style calls.
type PythonAPICallAnalyzer struct{}

func (a *PythonAPICallAnalyzer) Language() string { return "Python" }

var pythonCallPatterns = []callPattern{
	{re: regexp.MustCompile(`(?:requests|httpx)\.(get|post|put|delete|patch|head)\(\s*['"]([^'"]+)['"]`)},
	{re: regexp.MustCompile(`urllib\.request\.urlopen\(\s*['"]([^'"]+)['"]`), method: "GET"},
}

func (a *PythonAPICallAnalyzer) Analyze(path string, content []byte) ([]inventory.APICall, error) {
	return scanCalls(path, content, pythonCallPatterns), nil
}

// JavaScriptAPICallAnalyzer detects fetch and axios calls.
type JavaScriptAPICallAnalyzer struct{}

func (a *JavaScriptAPICallAnalyzer) Language() string { return "JavaScript" }

var jsCallPatterns = []callPattern{
	{re: regexp.MustCompile(`axios\.(get|post|put|delete|patch|head)\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)},
	{re: regexp.MustCompile(`fetch\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`), method: "GET"},
}

func (a *JavaScriptAPICallAnalyzer) Analyze(path string, content []byte) ([]inventory.APICall, error) {
	return scanCalls(path, content, jsCallPatterns), nil
}

// GoAPICallAnalyzer detects net/http calls.
type GoAPICallAnalyzer struct{}

func (a *GoAPICallAnalyzer) Language() string { return "Go" }

var goCallPatterns = []callPattern{
	{re: regexp.MustCompile(`http\.(Get|Post|Head|PostForm)\(\s*"([^"]+)"`)},
	{re: regexp.MustCompile(`http\.NewRequest(?:WithContext)?\(\s*(?:ctx,\s*)?(?:http\.Method(\w+)|"(\w+)")\s*,\s*"([^"]+)"`)},
}

func (a *GoAPICallAnalyzer) Analyze(path string, content []byte) ([]inventory.APICall, error) {
	calls := scanCalls(path, content, goCallPatterns)
	for i := range calls {
		// POSTFORM is an http helper name, not a method.
		if calls[i].HTTPMethod == "POSTFORM" {
			calls[i].HTTPMethod = "POST"
		}
	}
	return calls, nil
}
