// Package config loads the linktidy.yaml project configuration. Every
// field has a sensible default so the file is entirely optional.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linktidy/linktidy/internal/dedup"
	"github.com/linktidy/linktidy/internal/validate"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "linktidy.yaml"

// Config is the top-level YAML configuration.
type Config struct {
	// Dedup configures the deduplication pass.
	Dedup DedupConfig `yaml:"dedup"`

	// Validate configures link validation.
	Validate ValidateConfig `yaml:"validate"`

	// Database is the path to the SQLite cache database.
	Database string `yaml:"database"`
}

// DedupConfig mirrors the dedup engine settings in YAML form.
type DedupConfig struct {
	// Strategy: "exact-url", "exact-title", "domain-scoped", or "fuzzy"
	Strategy string `yaml:"strategy"`

	// Threshold is the fuzzy similarity cutoff in [0, 1].
	Threshold float64 `yaml:"threshold"`

	// Keep: "first", "last", "shortest-label", or "longest-label"
	Keep string `yaml:"keep"`

	// Report enables the text analysis report.
	Report bool `yaml:"report"`
}

// ValidateConfig mirrors the validation settings in YAML form.
type ValidateConfig struct {
	// Concurrency is the maximum number of in-flight requests.
	Concurrency int `yaml:"concurrency"`

	// RequestsPerSecond caps the overall request rate.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Timeout per request, e.g. "10s", "1m".
	Timeout string `yaml:"timeout"`

	// CacheMaxAge controls how old a cached result may be before the
	// URL is probed again, e.g. "168h". Empty disables the cache.
	CacheMaxAge string `yaml:"cache_max_age"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dc := dedup.DefaultConfig()
	vc := validate.DefaultConfig()
	return &Config{
		Dedup: DedupConfig{
			Strategy:  string(dc.Strategy),
			Threshold: dc.SimilarityThreshold,
			Keep:      string(dc.KeepRule),
			Report:    dc.WantReport,
		},
		Validate: ValidateConfig{
			Concurrency:       vc.Concurrency,
			RequestsPerSecond: vc.RequestsPerSecond,
			Timeout:           vc.Timeout.String(),
		},
		Database: ".linktidy/linktidy.db",
	}
}

// Load reads the YAML file at path. A missing file is not an error: the
// defaults are returned so running without a config file just works.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// DedupSettings converts the YAML form into the engine's config and
// validates it.
func (c *Config) DedupSettings() (dedup.Config, error) {
	cfg := dedup.Config{
		Strategy:            dedup.Strategy(c.Dedup.Strategy),
		SimilarityThreshold: c.Dedup.Threshold,
		KeepRule:            dedup.KeepRule(c.Dedup.Keep),
		WantReport:          c.Dedup.Report,
	}
	if err := cfg.Validate(); err != nil {
		return dedup.Config{}, fmt.Errorf("dedup config: %w", err)
	}
	return cfg, nil
}

// ValidateSettings converts the YAML form into the validator's config.
func (c *Config) ValidateSettings() (validate.Config, error) {
	cfg := validate.DefaultConfig()
	if c.Validate.Concurrency != 0 {
		cfg.Concurrency = c.Validate.Concurrency
	}
	if c.Validate.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = c.Validate.RequestsPerSecond
	}
	if c.Validate.Timeout != "" {
		timeout, err := time.ParseDuration(c.Validate.Timeout)
		if err != nil {
			return validate.Config{}, fmt.Errorf("invalid timeout %q: %w", c.Validate.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return validate.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// CacheMaxAge parses the cache window. Zero means the cache is disabled.
func (c *Config) CacheMaxAge() (time.Duration, error) {
	if c.Validate.CacheMaxAge == "" {
		return 0, nil
	}
	age, err := time.ParseDuration(c.Validate.CacheMaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_max_age %q: %w", c.Validate.CacheMaxAge, err)
	}
	return age, nil
}
