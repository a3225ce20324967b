package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/internal/inventory"
)

func TestPythonAPICallAnalyzer(t *testing.T) {
	content := []byte(`import requests

resp = requests.get("https://api.example.com/users")

resp = requests.post(
    "https://api.example.com/orders")
`)
	calls, err := (&PythonAPICallAnalyzer{}).Analyze("client.py", content)
	require.NoError(t, err)
	// the multi-line post call keeps its URL on the next line and is not detected
	require.Len(t, calls, 1)

	assert.Equal(t, "https://api.example.com/users", calls[0].URL)
	assert.Equal(t, "GET", calls[0].HTTPMethod)
	assert.Equal(t, inventory.AuthNone, calls[0].AuthType)
	assert.Equal(t, 3, calls[0].LineNumber)
	assert.Equal(t, inventory.StatusCannotDetermine, calls[0].Status)
}

func TestPythonAPICallAuthDetection(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected inventory.AuthType
	}{
		{
			name: "bearer token",
			content: `requests.get("https://api.example.com/a",
    headers={"Authorization": "Bearer abc"})`,
			expected: inventory.AuthToken,
		},
		{
			name: "basic auth tuple",
			content: `requests.get("https://api.example.com/a",
    auth=("user", "pass"))`,
			expected: inventory.AuthBasic,
		},
		{
			name: "api key header",
			content: `requests.get("https://api.example.com/a",
    headers={"X-API-Key": key})`,
			expected: inventory.AuthAPIKey,
		},
		{
			name: "oauth wins over token keyword",
			content: `requests.get("https://api.example.com/a",
    headers=oauth_headers(token))`,
			expected: inventory.AuthOAuth,
		},
		{
			name:     "bare call",
			content:  `requests.get("https://api.example.com/a")`,
			expected: inventory.AuthNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls, err := (&PythonAPICallAnalyzer{}).Analyze("client.py", []byte(tc.content))
			require.NoError(t, err)
			require.Len(t, calls, 1)
			assert.Equal(t, tc.expected, calls[0].AuthType)
		})
	}
}

func TestJavaScriptAPICallAnalyzer(t *testing.T) {
	content := []byte("const r = await axios.post('https://api.example.com/items', body);\n" +
		"const d = await fetch(`https://api.example.com/data`);\n")
	calls, err := (&JavaScriptAPICallAnalyzer{}).Analyze("api.js", content)
	require.NoError(t, err)
	require.Len(t, calls, 2)

	assert.Equal(t, "POST", calls[0].HTTPMethod)
	assert.Equal(t, "https://api.example.com/items", calls[0].URL)
	assert.Equal(t, "GET", calls[1].HTTPMethod)
	assert.Equal(t, "https://api.example.com/data", calls[1].URL)
}

func TestGoAPICallAnalyzer(t *testing.T) {
	content := []byte(`package main

func run() {
	resp, _ := http.Get("https://api.example.com/status")
	_ = resp
	_, _ = http.PostForm("https://api.example.com/form", nil)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, "https://api.example.com/items", nil)
	req2, _ := http.NewRequest("DELETE", "https://api.example.com/items/1", nil)
}
`)
	calls, err := (&GoAPICallAnalyzer{}).Analyze("client.go", content)
	require.NoError(t, err)
	require.Len(t, calls, 4)

	assert.Equal(t, "GET", calls[0].HTTPMethod)
	assert.Equal(t, "POST", calls[1].HTTPMethod)
	assert.Equal(t, "PUT", calls[2].HTTPMethod)
	assert.Equal(t, "https://api.example.com/items", calls[2].URL)
	assert.Equal(t, "DELETE", calls[3].HTTPMethod)
}
