package commands

import (
	"fmt"

	"github.com/hsulin/stockscan/internal/metrics"
	"github.com/hsulin/stockscan/internal/notify"
	"github.com/hsulin/stockscan/internal/pipeline"
	"github.com/hsulin/stockscan/internal/provider/yahoo"
	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/httputil"
	"github.com/hsulin/stockscan/pkg/logger"
)

// app bundles the long-lived pieces every command needs.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	pipeline *pipeline.Pipeline
	metrics  *metrics.Metrics // nil when monitoring is off
}

// newApp loads config and wires the scan pipeline.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	provider := yahoo.New(cfg.Provider, httputil.New(cfg.Provider, log), log)

	var notifier notify.Notifier
	if cfg.SMTP.Configured() {
		notifier = notify.NewMailNotifier(cfg.SMTP, log)
	} else {
		log.Warn("SMTP not fully configured (need SMTP_USER/SMTP_PASS/SMTP_TO): mail disabled")
		notifier = notify.NewLogNotifier(log)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		pipeline: pipeline.New(cfg, provider, notifier, m, log),
		metrics:  m,
	}, nil
}
