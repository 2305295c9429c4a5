package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nbafetch/pkg/logger"
	"nbafetch/pkg/pipeline"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the stats service is reachable without fetching data",
	Long: `Perform the same health check a full run starts with, then exit.
The command exits non-zero when the service does not answer, which makes it
usable as a preflight in scripts and schedulers.`,
	Example: `  nbafetch check
  nbafetch check --season 2024-25`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := pipeline.Build(cfg, logger.GetLogger())
		if err != nil {
			return fmt.Errorf("failed to assemble pipeline: %w", err)
		}

		_, err = p.Run(cmd.Context(), pipeline.Options{CheckOnly: true})
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
