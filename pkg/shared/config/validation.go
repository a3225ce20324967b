package config

import (
	"fmt"
	"time"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateGitConfig(&cfg.GitClient); err != nil {
		return fmt.Errorf("YAML global config: git_client directive is invalid: %w", err)
	}
	if err := ValidateJobsConfig(&cfg.Jobs); err != nil {
		return fmt.Errorf("YAML global config: jobs directive is invalid: %w", err)
	}
	return nil
}

// ValidateGitConfig checks if the Git configurations have valid values.
func ValidateGitConfig(gitConfig *GitClient) error {
	if gitConfig == nil {
		return fmt.Errorf("git configuration is nil")
	}
	if gitConfig.Depth < 0 {
		return fmt.Errorf("depth cannot be negative: %d", gitConfig.Depth)
	}
	if err := validateDuration(gitConfig.Timeout, "timeout", 1*time.Hour); err != nil {
		return err
	}
	switch gitConfig.AuthType {
	case "", "http", "ssh-key":
	default:
		return fmt.Errorf("unknown auth_type: %q", gitConfig.AuthType)
	}
	return nil
}

// ValidateJobsConfig checks if the job store configurations have valid values.
func ValidateJobsConfig(jobsConfig *Jobs) error {
	if jobsConfig == nil {
		return fmt.Errorf("jobs configuration is nil")
	}
	durations := map[string]time.Duration{
		"cleanup_interval": jobsConfig.CleanupInterval,
		"cleanup_age":      jobsConfig.CleanupAge,
		"stale_threshold":  jobsConfig.StaleThreshold,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 7*24*time.Hour); err != nil {
			return err
		}
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}
