package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the global application configuration loaded from YAML.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	Server     Server     `yaml:"server"`
	GitClient  GitClient  `yaml:"git_client"`
	Jobs       Jobs       `yaml:"jobs"`
	Scan       Scan       `yaml:"scan"`
	HttpClient HttpClient `yaml:"http_client"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Server holds settings for the REST API.
type Server struct {
	Addr    string `yaml:"addr"`
	EnvFile string `yaml:"env_file"`
}

// GitClient holds settings for the repository clone service.
type GitClient struct {
	AuthType string        `yaml:"auth_type"`
	SSHKey   string        `yaml:"ssh_key"`
	Depth    int           `yaml:"depth"`
	Timeout  time.Duration `yaml:"timeout"`
	Insecure *bool         `yaml:"insecure_tls"`
	WorkDir  string        `yaml:"work_dir"`
}

// Jobs holds settings for the in-memory job store lifecycle.
type Jobs struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	CleanupAge      time.Duration `yaml:"cleanup_age"`
	StaleThreshold  time.Duration `yaml:"stale_threshold"`
}

// Scan holds defaults for the scan pipeline.
type Scan struct {
	Excludes   []string `yaml:"excludes"`
	Categories string   `yaml:"categories"`
}

// HttpClient holds settings for outbound HTTP clients.
type HttpClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Defaults applied when the YAML file leaves a directive unset.
const (
	DefaultServerAddr      = ":8000"
	DefaultCloneDepth      = 1
	DefaultCloneTimeout    = 10 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
	DefaultCleanupAge      = 24 * time.Hour
	DefaultStaleThreshold  = 120 * time.Second
)

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the application configuration from the given path.
// A missing file is not an error: the zero configuration plus defaults is
// enough to run local scans.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, &config); err != nil {
		return nil, err
	}

	return config, nil
}
