// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/hsulin/stockscan/internal/pipeline"
	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/logger"
)

// ScanJob runs the full daily scan pipeline on schedule.
type ScanJob struct {
	pipeline *pipeline.Pipeline
	config   *config.Config
	logger   *logger.Logger
}

// NewScanJob creates a new scheduled scan job.
func NewScanJob(p *pipeline.Pipeline, cfg *config.Config, log *logger.Logger) *ScanJob {
	return &ScanJob{
		pipeline: p,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name.
func (j *ScanJob) Name() string {
	return "daily_scan"
}

// Schedule returns the cron schedule from config.
func (j *ScanJob) Schedule() string {
	return j.config.ScanSchedule
}

// Run executes one scan.
func (j *ScanJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled scan")

	summary, err := j.pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"ranked":  summary.Ranked,
		"skipped": summary.Skipped,
		"csv":     summary.CSVPath,
	}).Info("Scheduled scan finished")
	return nil
}
