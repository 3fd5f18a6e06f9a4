// Package config provides configuration loading for Scout.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (SCOUT_*) > config file (~/.scout.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buemura/scout/internal/analysis"
)

// Config holds all Scout configuration options.
type Config struct {
	DefaultRoot  string   `mapstructure:"default_root" yaml:"default_root"`
	OutputFormat string   `mapstructure:"output_format" yaml:"output_format"`
	Concurrency  int      `mapstructure:"concurrency" yaml:"concurrency"`
	MaxFileSize  int64    `mapstructure:"max_file_size" yaml:"max_file_size"`
	IgnoreRules  []string `mapstructure:"ignore_rules" yaml:"ignore_rules"`
	RulesFile    string   `mapstructure:"rules_file" yaml:"rules_file"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat: "table",
		Concurrency:  8,
		MaxFileSize:  1 << 20,
		IgnoreRules:  analysis.DefaultIgnoreRules(),
	}
}

// Load reads configuration from ~/.scout.yaml and environment variables.
// It does NOT apply CLI flag overrides — call ApplyFlags for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".scout")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("SCOUT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("SCOUT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("concurrency") {
		val, _ := flags.GetInt("concurrency")
		cfg.Concurrency = val
	}
	if flags.Changed("max-file-size") {
		val, _ := flags.GetInt64("max-file-size")
		cfg.MaxFileSize = val
	}
	if flags.Changed("ignore") {
		val, _ := flags.GetStringSlice("ignore")
		cfg.IgnoreRules = val
	}
	if flags.Changed("rules") {
		val, _ := flags.GetString("rules")
		cfg.RulesFile = val
	}
}

// ConfigFilePath returns the default config file path (~/.scout.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scout.yaml"
	}
	return filepath.Join(home, ".scout.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "table")
	v.SetDefault("concurrency", 8)
	v.SetDefault("max_file_size", 1<<20)
	v.SetDefault("ignore_rules", analysis.DefaultIgnoreRules())
}
