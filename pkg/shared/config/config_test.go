package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`logger:
  level: debug
server:
  addr: ":9000"
git_client:
  auth_type: http
  depth: 1
  timeout: 5m
jobs:
  cleanup_interval: 10m
scan:
  excludes: [generated]
  categories: categories.yml
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "http", cfg.GitClient.AuthType)
	assert.Equal(t, 5*time.Minute, cfg.GitClient.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.CleanupInterval)
	assert.Equal(t, []string{"generated"}, cfg.Scan.Excludes)
	assert.Equal(t, "categories.yml", cfg.Scan.Categories)
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         *Config
		expectedErr string
	}{
		{
			name: "valid zero config",
			cfg:  &Config{},
		},
		{
			name:        "nil config",
			cfg:         nil,
			expectedErr: "YAML global config: configuration object is nil",
		},
		{
			name:        "negative clone depth",
			cfg:         &Config{GitClient: GitClient{Depth: -1}},
			expectedErr: "YAML global config: git_client directive is invalid: depth cannot be negative: -1",
		},
		{
			name:        "unknown auth type",
			cfg:         &Config{GitClient: GitClient{AuthType: "kerberos"}},
			expectedErr: `YAML global config: git_client directive is invalid: unknown auth_type: "kerberos"`,
		},
		{
			name:        "excessive timeout",
			cfg:         &Config{GitClient: GitClient{Timeout: 2 * time.Hour}},
			expectedErr: `YAML global config: git_client directive is invalid: "timeout" duration is too long: 2h0m0s exceeds maximum of 1h0m0s`,
		},
		{
			name:        "negative cleanup interval",
			cfg:         &Config{Jobs: Jobs{CleanupInterval: -time.Minute}},
			expectedErr: `YAML global config: jobs directive is invalid: invalid duration for "cleanup_interval": -1m0s cannot be negative`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg)
			if tc.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.expectedErr)
			}
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, 5, SetThen(0, 5))
	assert.Equal(t, 3, SetThen(3, 5))
	assert.Equal(t, "fallback", SetThen("", "fallback"))
	assert.Equal(t, time.Minute, SetThen(time.Duration(0), time.Minute))
}

func TestGetBoolValue(t *testing.T) {
	truthy := true
	cfg := HttpClient{Debug: &truthy}

	assert.True(t, GetBoolValue(cfg, "Debug", false))
	assert.False(t, GetBoolValue(HttpClient{}, "Debug", false))
	assert.True(t, GetBoolValue(HttpClient{}, "Debug", true))
	assert.False(t, GetBoolValue(cfg, "Missing", false))
}
