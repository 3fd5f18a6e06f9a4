package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/internal/analysis/rules"
	"github.com/buemura/scout/internal/config"
)

var version = "dev"

var (
	outputFlag      string
	verboseFlag     bool
	concurrencyFlag int
	maxFileSizeFlag int64
	ignoreFlag      []string
	rulesFlag       string
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Scout — static project analysis for developers",
	Long: `Scout scans a source tree, extracts its classes and functions,
collects line metrics, and runs heuristic quality rules to surface
hardcoded secrets, unused imports, missing error handling, and other
common issues.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all existing commands
		// pick up config-file and env-var defaults transparently.
		outputFlag = cfg.OutputFormat
		concurrencyFlag = cfg.Concurrency
		maxFileSizeFlag = cfg.MaxFileSize
		ignoreFlag = cfg.IgnoreRules
		rulesFlag = cfg.RulesFile

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger; --verbose enables debug output.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if verboseFlag {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "scout",
		Level:  level,
		Output: os.Stderr,
	})
}

// scanOptions assembles analysis options from config and flags.
func scanOptions(logger hclog.Logger) (analysis.Options, error) {
	opts := analysis.DefaultOptions()
	opts.Concurrency = concurrencyFlag
	opts.MaxFileSize = maxFileSizeFlag
	opts.IgnoreRules = ignoreFlag
	opts.Logger = logger

	if rulesFlag != "" {
		cfg, err := rules.LoadConfig(rulesFlag)
		if err != nil {
			return opts, fmt.Errorf("loading rule config: %w", err)
		}
		opts.RuleConfig = cfg
	}
	return opts, nil
}

// resolveRoot picks the scan root from the positional argument, the
// configured default, or the working directory.
func resolveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if appConfig != nil && appConfig.DefaultRoot != "" {
		return appConfig.DefaultRoot
	}
	return "."
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown, html, sarif")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "c", 8, "max files analyzed concurrently")
	rootCmd.PersistentFlags().Int64Var(&maxFileSizeFlag, "max-file-size", 1<<20, "files larger than this many bytes are counted but not analyzed")
	rootCmd.PersistentFlags().StringSliceVar(&ignoreFlag, "ignore", analysis.DefaultIgnoreRules(), "directory glob patterns to skip")
	rootCmd.PersistentFlags().StringVar(&rulesFlag, "rules", "", "path to a YAML rule configuration file")

	rootCmd.AddCommand(versionCmd)
}
