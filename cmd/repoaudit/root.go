package main

import (
	"os"

	"github.com/spf13/cobra"

	"repoaudit/internal/logging"
	"repoaudit/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "repoaudit",
	Short: "repoaudit - repository health and debt auditor",
	Long: `repoaudit scores a repository snapshot for health and technical debt,
classifies product maturity and size, derives forward (COCOMO-style) and
historical (git-velocity) cost estimates, and generates a prioritized
remediation backlog.

It consumes a facts JSON file produced by the extraction tooling; it never
clones or scans repositories itself.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("repoaudit version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config file (default: ./repoaudit.toml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error")
}

// newLogger builds the logger for a command run. Log format follows the
// output format so JSON pipelines stay machine-readable end to end.
// Precedence for level: CLI flag > REPOAUDIT_LOG_LEVEL env var > info.
func newLogger(outputFormat string) *logging.Logger {
	level := logLevelFlag
	if level == "" {
		level = os.Getenv("REPOAUDIT_LOG_LEVEL")
	}

	format := logging.HumanFormat
	if outputFormat == string(FormatJSON) {
		format = logging.JSONFormat
	}

	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(level),
	})
}
