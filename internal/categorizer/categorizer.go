// Package categorizer maps dependency and API-call names onto a configured
// taxonomy of categories.
package categorizer

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/pkg/shared/config"
)

// ErrConfig marks category-configuration load failures. Construction is the
// only phase that touches the filesystem; classification itself never fails.
var ErrConfig = errors.New("invalid category configuration")

// Uncategorized is the implicit bucket for names no category claims. It is
// always the last category in output order.
const Uncategorized = "Uncategorized"

// Category is one named bucket with its match rules. Rule layers are matched
// in the order members, prefixes, patterns; within a layer, declaration order
// wins.
type Category struct {
	Name     string   `yaml:"name"`
	Members  []string `yaml:"members"`
	Prefixes []string `yaml:"prefixes"`
	Patterns []string `yaml:"patterns"`
}

// Config is the ordered category taxonomy. Immutable after load.
type Config struct {
	Categories []Category `yaml:"categories"`
	// Restricted lists category names whose findings are surfaced in SARIF
	// reports.
	Restricted []string `yaml:"restricted"`
}

// Load reads a category configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	for i, category := range cfg.Categories {
		if category.Name == "" {
			return nil, fmt.Errorf("%w: category at index %d has no name", ErrConfig, i)
		}
		if category.Name == Uncategorized {
			return nil, fmt.Errorf("%w: %q is reserved", ErrConfig, Uncategorized)
		}
	}
	return cfg, nil
}

// Categorizer classifies names against a loaded configuration.
type Categorizer struct {
	cfg *Config

	// normalized member sets per category, precomputed once
	exact      []map[string]bool
	normalized []map[string]bool
}

// New builds a categorizer from a loaded configuration.
func New(cfg *Config) *Categorizer {
	c := &Categorizer{cfg: cfg}
	for _, category := range cfg.Categories {
		exact := make(map[string]bool, len(category.Members))
		normalized := make(map[string]bool, len(category.Members))
		for _, member := range category.Members {
			exact[member] = true
			normalized[normalizeName(member)] = true
		}
		c.exact = append(c.exact, exact)
		c.normalized = append(c.normalized, normalized)
	}
	return c
}

// normalizeName lowercases a name and collapses the `-`/`_` separators.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// CategoryFor resolves the single category for a name. Matching layers in
// order, each layer scanning categories in declaration order: exact member
// match, normalized member match, then prefix and glob patterns. The first
// match wins; names nothing claims land in Uncategorized.
func (c *Categorizer) CategoryFor(name string) string {
	for i := range c.cfg.Categories {
		if c.exact[i][name] {
			return c.cfg.Categories[i].Name
		}
	}

	normalized := normalizeName(name)
	for i := range c.cfg.Categories {
		if c.normalized[i][normalized] {
			return c.cfg.Categories[i].Name
		}
	}

	for i, category := range c.cfg.Categories {
		if c.matchesPatterns(category, name) {
			return c.cfg.Categories[i].Name
		}
	}

	return Uncategorized
}

// matchesPatterns evaluates a category's prefix and glob rules in their
// declared order.
func (c *Categorizer) matchesPatterns(category Category, name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range category.Prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	for _, pattern := range category.Patterns {
		if ok, _ := path.Match(strings.ToLower(pattern), lower); ok {
			return true
		}
	}
	return false
}

// Order returns category names in configuration order with Uncategorized last.
func (c *Categorizer) Order() []string {
	order := make([]string, 0, len(c.cfg.Categories)+1)
	for _, category := range c.cfg.Categories {
		order = append(order, category.Name)
	}
	return append(order, Uncategorized)
}

// Restricted returns the configured restricted category names.
func (c *Categorizer) Restricted() []string {
	return c.cfg.Restricted
}

// CategorizeDependencies partitions dependencies into category buckets. Every
// input dependency appears in exactly one bucket; bucket order within a
// category follows input order.
func (c *Categorizer) CategorizeDependencies(deps []inventory.Dependency) map[string][]inventory.Dependency {
	result := make(map[string][]inventory.Dependency)
	for _, dep := range deps {
		category := c.CategoryFor(dep.Name)
		result[category] = append(result[category], dep)
	}
	return result
}

// Categorize partitions plain names, used for API-call classification.
func (c *Categorizer) Categorize(names []string) map[string][]string {
	result := make(map[string][]string)
	for _, name := range names {
		category := c.CategoryFor(name)
		result[category] = append(result[category], name)
	}
	return result
}
