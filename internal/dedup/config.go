package dedup

import (
	"fmt"
	"os"
	"strconv"
)

// Strategy selects how records are grouped into duplicate sets.
type Strategy string

const (
	// StrategyExactURL groups records whose canonicalized URLs are identical
	StrategyExactURL Strategy = "exact-url"

	// StrategyExactTitle groups records whose lower-cased trimmed labels are identical
	StrategyExactTitle Strategy = "exact-title"

	// StrategyDomainScoped runs the exact-url scan independently per domain
	StrategyDomainScoped Strategy = "domain-scoped"

	// StrategyFuzzy clusters records by a weighted URL/title/domain similarity score
	StrategyFuzzy Strategy = "fuzzy"
)

// IsValid checks if the strategy value is recognized
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyExactURL, StrategyExactTitle, StrategyDomainScoped, StrategyFuzzy:
		return true
	}
	return false
}

// KeepRule selects which member of a duplicate group survives.
type KeepRule string

const (
	// KeepFirst keeps the group member with the lowest input index
	KeepFirst KeepRule = "first"

	// KeepLast keeps the group member with the highest input index
	KeepLast KeepRule = "last"

	// KeepShortestLabel keeps the member with the shortest label,
	// ties broken toward the lowest index
	KeepShortestLabel KeepRule = "shortest-label"

	// KeepLongestLabel keeps the member with the longest label,
	// ties broken toward the lowest index
	KeepLongestLabel KeepRule = "longest-label"
)

// IsValid checks if the keep rule value is recognized
func (k KeepRule) IsValid() bool {
	switch k {
	case KeepFirst, KeepLast, KeepShortestLabel, KeepLongestLabel:
		return true
	}
	return false
}

// Config holds configuration for a deduplication run
type Config struct {
	// Strategy is the duplicate detection strategy to apply
	// Default: exact-url
	Strategy Strategy

	// SimilarityThreshold is the minimum combined similarity score (0.0-1.0)
	// for the fuzzy strategy to join two records into one group.
	// Higher values = more conservative (fewer merges)
	// Only meaningful when Strategy is fuzzy.
	// Default: 0.85
	SimilarityThreshold float64

	// KeepRule selects the surviving member of each duplicate group
	// Default: first
	KeepRule KeepRule

	// WantReport requests a plain-text duplicate analysis report alongside
	// the filtered records
	// Default: false
	WantReport bool
}

// DefaultConfig returns the default deduplication configuration.
//
// The defaults are conservative: exact canonical-URL matching only, and the
// fuzzy threshold (should the strategy be switched) high enough that mostly
// unrelated bookmarks are never merged.
func DefaultConfig() Config {
	return Config{
		Strategy:            StrategyExactURL,
		SimilarityThreshold: 0.85,
		KeepRule:            KeepFirst,
		WantReport:          false,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if !c.Strategy.IsValid() {
		return fmt.Errorf("unrecognized strategy %q (want one of: %s, %s, %s, %s)",
			c.Strategy, StrategyExactURL, StrategyExactTitle, StrategyDomainScoped, StrategyFuzzy)
	}
	if c.SimilarityThreshold < 0.0 || c.SimilarityThreshold > 1.0 {
		return fmt.Errorf("similarity_threshold must be between 0.0 and 1.0 (got %.2f)",
			c.SimilarityThreshold)
	}
	if !c.KeepRule.IsValid() {
		return fmt.Errorf("unrecognized keep rule %q (want one of: %s, %s, %s, %s)",
			c.KeepRule, KeepFirst, KeepLast, KeepShortestLabel, KeepLongestLabel)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf("Config{Strategy: %s, Threshold: %.2f, Keep: %s, Report: %t}",
		c.Strategy, c.SimilarityThreshold, c.KeepRule, c.WantReport)
}

// ConfigFromEnv creates a Config from environment variables, falling back to
// defaults.
//
// Environment variables:
//   - LINKTIDY_DEDUP_STRATEGY: detection strategy (default: exact-url)
//   - LINKTIDY_DEDUP_THRESHOLD: fuzzy similarity threshold 0.0-1.0 (default: 0.85)
//   - LINKTIDY_DEDUP_KEEP: keep rule (default: first)
//   - LINKTIDY_DEDUP_REPORT: generate a report (default: false)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("LINKTIDY_DEDUP_STRATEGY"); v != "" {
		cfg.Strategy = Strategy(v)
	}
	if err := parseEnvFloat("LINKTIDY_DEDUP_THRESHOLD", &cfg.SimilarityThreshold); err != nil {
		return cfg, err
	}
	if v := os.Getenv("LINKTIDY_DEDUP_KEEP"); v != "" {
		cfg.KeepRule = KeepRule(v)
	}
	if err := parseEnvBool("LINKTIDY_DEDUP_REPORT", &cfg.WantReport); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}

	return cfg, nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
