// Package cli wires the cobra command surface for the calendar generator.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"futbolcal/internal/config"
	"futbolcal/internal/generator"
	"futbolcal/internal/logger"
)

var (
	flagOutput  string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "futbolcal",
		Short: "Generate a subscribable fixture calendar for River, Boca and Argentina",
		Long: `Fetches upcoming fixtures for River Plate, Boca Juniors and the Argentina
national team from ESPN, normalizes and deduplicates them, and writes a
subscribable .ics calendar file.

The run is best-effort: sources that fail or return nothing are skipped and
the calendar is built from whatever remains. The process always exits 0 in
normal operation so it is safe to run on a schedule.`,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagOutput, "output", config.DefaultOutputFile, "Output calendar file path")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the calendar to stdout instead of writing the file")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runGenerate is the main command logic. Errors are logged, never
// propagated: a partial calendar beats a failed scheduled run.
func runGenerate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg := config.Load()
	gen := generator.New(cfg)

	output := flagOutput
	if output == "" {
		output = cfg.OutputFile
	}

	doc, err := gen.Run(output, flagDryRun)
	if err != nil {
		logger.Error("calendar write failed", logger.Fields{"output": output}, err)
		return nil
	}

	if flagDryRun {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	logger.Info("calendar written", logger.Fields{"output": output})
	return nil
}
