package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleOverride adjusts a single rule from a rule-set file.
type RuleOverride struct {
	Enabled  *bool  `yaml:"enabled"`
	Severity string `yaml:"severity"`
}

// Thresholds hold the tunable limits of the built-in rules.
type Thresholds struct {
	LargeFileLines int     `yaml:"large_file_lines"`
	Complexity     int     `yaml:"complexity"`
	DocCoverage    float64 `yaml:"doc_coverage"`
}

// Config is the YAML rule-set definition. Heuristic rule logic is
// deliberately configurable rather than fixed: rules can be disabled,
// re-ranked, and extended with additional secret patterns.
type Config struct {
	Rules          map[string]RuleOverride `yaml:"rules"`
	Thresholds     Thresholds              `yaml:"thresholds"`
	SecretPatterns []string                `yaml:"secret_patterns"`
}

// DefaultConfig returns the built-in rule set.
func DefaultConfig() *Config {
	return &Config{
		Rules: map[string]RuleOverride{},
		Thresholds: Thresholds{
			LargeFileLines: 500,
			Complexity:     10,
			DocCoverage:    0.5,
		},
	}
}

// LoadConfig reads a rule-set file and merges it over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule set: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing rule set %s: %w", path, err)
	}

	if cfg.Thresholds.LargeFileLines <= 0 {
		cfg.Thresholds.LargeFileLines = 500
	}
	if cfg.Thresholds.Complexity <= 0 {
		cfg.Thresholds.Complexity = 10
	}
	if cfg.Thresholds.DocCoverage <= 0 {
		cfg.Thresholds.DocCoverage = 0.5
	}
	return cfg, nil
}
