package categorizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/internal/inventory"
)

func testConfig() *Config {
	return &Config{
		Categories: []Category{
			{Name: "Databases", Members: []string{"psycopg2", "PyMySQL"}, Prefixes: []string{"sqlalchemy"}},
			{Name: "HTTP Clients", Members: []string{"requests"}, Patterns: []string{"http*"}},
			{Name: "Messaging", Members: []string{"pika"}},
		},
		Restricted: []string{"Messaging"},
	}
}

func TestCategoryFor(t *testing.T) {
	c := New(testConfig())

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "exact member", input: "psycopg2", expected: "Databases"},
		{name: "normalized member", input: "py-mysql", expected: "Databases"},
		{name: "normalized case", input: "Requests", expected: "HTTP Clients"},
		{name: "prefix match", input: "sqlalchemy-utils", expected: "Databases"},
		{name: "glob match", input: "httpx", expected: "HTTP Clients"},
		{name: "no match", input: "left-pad", expected: Uncategorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.CategoryFor(tc.input))
		})
	}
}

func TestExactMemberBeatsEarlierPattern(t *testing.T) {
	// "httpie" is claimed exactly by a later category; the earlier glob only
	// wins for names no member list claims.
	c := New(&Config{
		Categories: []Category{
			{Name: "HTTP Clients", Patterns: []string{"http*"}},
			{Name: "CLI Tools", Members: []string{"httpie"}},
		},
	})

	assert.Equal(t, "CLI Tools", c.CategoryFor("httpie"))
	assert.Equal(t, "HTTP Clients", c.CategoryFor("httpx"))
}

func TestCategorizeDependenciesPartition(t *testing.T) {
	c := New(testConfig())
	deps := []inventory.Dependency{
		{Name: "psycopg2"}, {Name: "requests"}, {Name: "pika"},
		{Name: "left-pad"}, {Name: "sqlalchemy"}, {Name: "unknown-lib"},
	}

	buckets := c.CategorizeDependencies(deps)

	// every input lands in exactly one bucket and nothing is dropped
	total := 0
	seen := make(map[string]int)
	for _, bucket := range buckets {
		total += len(bucket)
		for _, dep := range bucket {
			seen[dep.Name]++
		}
	}
	assert.Equal(t, len(deps), total)
	for _, dep := range deps {
		assert.Equal(t, 1, seen[dep.Name], dep.Name)
	}

	assert.ElementsMatch(t, []inventory.Dependency{{Name: "psycopg2"}, {Name: "sqlalchemy"}}, buckets["Databases"])
	assert.Equal(t, []inventory.Dependency{{Name: "pika"}}, buckets["Messaging"])
	assert.ElementsMatch(t, []inventory.Dependency{{Name: "left-pad"}, {Name: "unknown-lib"}}, buckets[Uncategorized])
}

func TestOrder(t *testing.T) {
	c := New(testConfig())
	assert.Equal(t, []string{"Databases", "HTTP Clients", "Messaging", Uncategorized}, c.Order())
}

func TestRestricted(t *testing.T) {
	c := New(testConfig())
	assert.Equal(t, []string{"Messaging"}, c.Restricted())
}

func TestCategorize(t *testing.T) {
	c := New(testConfig())
	buckets := c.Categorize([]string{"requests", "nothing"})
	assert.Equal(t, []string{"requests"}, buckets["HTTP Clients"])
	assert.Equal(t, []string{"nothing"}, buckets[Uncategorized])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yml")
	content := []byte(`categories:
  - name: Databases
    members: [psycopg2]
restricted: [Databases]
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, "Databases", cfg.Categories[0].Name)
	assert.Equal(t, []string{"Databases"}, cfg.Restricted)
}

func TestLoadRejectsBrokenConfigs(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "unnamed category", content: "categories:\n  - members: [a]\n"},
		{name: "reserved name", content: "categories:\n  - name: Uncategorized\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}
