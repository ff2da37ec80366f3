package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hsulin/stockscan/internal/scheduler"
	"github.com/hsulin/stockscan/internal/scheduler/jobs"
)

// scheduleCmd runs the scan on its cron schedule until interrupted.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the scan on its cron schedule",
	Long: `Starts the scheduler and runs the daily scan on the configured
cron expression (SCAN_SCHEDULE, seconds field included). With
METRICS_ENABLED the process also serves Prometheus metrics.

Example:
  SCAN_SCHEDULE="0 30 8 * * MON-FRI" go run ./cmd/scan schedule`,
	RunE: runSchedule,
}

var runAtStart bool

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().BoolVar(&runAtStart, "run-now", false, "run one scan immediately at startup")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(a.logger)
	job := jobs.NewScanJob(a.pipeline, a.cfg, a.logger)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}

	if a.metrics != nil {
		go a.metrics.Serve(ctx, a.cfg.MetricsPort, a.logger)
	}

	sched.Start()
	a.logger.WithField("schedule", a.cfg.ScanSchedule).Info("Scheduler running, waiting for jobs")

	if runAtStart {
		if err := sched.RunJob(job.Name()); err != nil {
			a.logger.WithError(err).Error("Initial scan failed")
		}
	}

	<-ctx.Done()
	sched.Stop()
	return nil
}
