// Package run implements the command that executes one full pipeline run.
package run

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/snipfeed/internal/config"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/pipeline"
)

// timeRound is the display precision for the run duration.
const timeRound = time.Millisecond

// Command returns the run command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the ingestion pipeline once",
		Long: `Fetch all configured sources concurrently, normalize and deduplicate
the records, and write the final batch to the configured output sink.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, logErr := logger.New(&cfg.Logger)
			if logErr != nil {
				return fmt.Errorf("create logger: %w", logErr)
			}

			p, buildErr := pipeline.FromConfig(cfg, log)
			if buildErr != nil {
				return fmt.Errorf("build pipeline: %w", buildErr)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, runErr := p.Run(ctx)
			if runErr != nil {
				return fmt.Errorf("pipeline run: %w", runErr)
			}

			fmt.Printf("ingested %d unique records from %d sources in %s\n",
				summary.Total, len(summary.SourceCounts), summary.Duration.Round(timeRound))

			return nil
		},
	}
}
