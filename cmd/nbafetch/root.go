package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"nbafetch/pkg/config"
	"nbafetch/pkg/logger"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	season     string
	dataDir    string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nbafetch",
	Short: "Download NBA stats data as CSV files",
	Long: `nbafetch pulls lineup and supplementary statistics from the NBA stats
service and writes them out as CSV files, one file per dataset.

Categories covered:
  - Lineups (2, 3 and 5 man groups, merged across measure types)
  - Team player on/off splits
  - Clutch stats
  - Synergy play types
  - Hustle stats (players and teams)
  - Player tracking
  - Defensive tracking
  - Player estimated metrics

Calls are paced and retried with exponential backoff so a full run stays
within the service's tolerance.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&season, "season", "s", "", `season to fetch, e.g. "2025-26"`)
	rootCmd.PersistentFlags().StringVarP(&dataDir, "output", "o", "", "directory for CSV output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging (overrides --log-level)")

	rootCmd.SetVersionTemplate(`nbafetch {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig builds the effective configuration from the file, environment
// and command line flags, and installs the logger it asks for.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if season != "" {
		cfg.Season = season
	}
	if dataDir != "" {
		cfg.Output.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(os.Stderr, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLogger(log)

	return cfg, nil
}
