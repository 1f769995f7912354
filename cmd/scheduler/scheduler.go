// Package scheduler implements cron-driven pipeline runs.
package scheduler

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/snipfeed/internal/config"
	"github.com/jonesrussell/snipfeed/internal/logger"
	"github.com/jonesrussell/snipfeed/internal/pipeline"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the ingestion pipeline on a cron schedule",
		Long: `Start a long-running process that executes the full pipeline on the
configured cron expression until interrupted.`,
		RunE: runScheduler,
	}
}

// runScheduler starts the cron loop and blocks until a shutdown signal.
func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logErr := logger.New(&cfg.Logger)
	if logErr != nil {
		return fmt.Errorf("create logger: %w", logErr)
	}
	log = log.WithComponent("scheduler")

	p, buildErr := pipeline.FromConfig(cfg, log)
	if buildErr != nil {
		return fmt.Errorf("build pipeline: %w", buildErr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		if _, runErr := p.Run(ctx); runErr != nil {
			// A failed scheduled run is logged and the schedule keeps
			// going; the next tick gets a fresh attempt.
			log.Error("scheduled run failed", "error", runErr.Error())
		}
	}

	c := cron.New()
	if _, addErr := c.AddFunc(cfg.Scheduler.Cron, runOnce); addErr != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cfg.Scheduler.Cron, addErr)
	}

	if cfg.Scheduler.RunOnStart {
		runOnce()
	}

	log.Info("scheduler started", "cron", cfg.Scheduler.Cron)
	c.Start()

	<-ctx.Done()

	log.Info("scheduler stopping")
	<-c.Stop().Done()

	return nil
}
