// Package pipeline wires the scan stages together: ticker universe,
// series provider, signal engine, report files and notification.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
	"github.com/hsulin/stockscan/internal/engine"
	"github.com/hsulin/stockscan/internal/metrics"
	"github.com/hsulin/stockscan/internal/notify"
	"github.com/hsulin/stockscan/internal/report"
	"github.com/hsulin/stockscan/internal/universe"
	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/logger"
)

// Pipeline executes one full scan run.
type Pipeline struct {
	cfg      *config.Config
	provider contracts.SeriesProvider
	engine   *engine.Engine
	reports  *report.Writer
	notifier notify.Notifier
	metrics  *metrics.Metrics // optional
	logger   *logger.Logger
	now      func() time.Time
}

// Summary describes a completed run.
type Summary struct {
	Ranked   int
	Skipped  int
	CSVPath  string
	HTMLPath string
	Duration time.Duration
}

// New creates a pipeline. metrics may be nil when monitoring is off.
func New(cfg *config.Config, provider contracts.SeriesProvider, notifier notify.Notifier, m *metrics.Metrics, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		provider: provider,
		engine:   engine.New(cfg.MinHistory, log),
		reports:  report.NewWriter(cfg.OutputDir, log),
		notifier: notifier,
		metrics:  m,
		logger:   log,
		now:      time.Now,
	}
}

// Run executes the scan end to end. Per-ticker problems are skips;
// only a run that yields nothing (or cannot reach its provider at
// all) fails. A failing run still leaves an error report behind and
// sends a failure notice.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := p.now()

	tickers, err := universe.Load(p.cfg.TickersFile)
	if err != nil {
		return nil, p.fail(ctx, start, fmt.Errorf("load universe: %w", err))
	}
	p.logger.WithField("tickers", len(tickers)).Info("Universe loaded")

	results, err := p.provider.Fetch(ctx, tickers, p.cfg.Lookback())
	if err != nil {
		return nil, p.fail(ctx, start, fmt.Errorf("fetch series: %w", err))
	}

	scan, skips, err := p.engine.Scan(ctx, results)
	if err != nil {
		return nil, p.fail(ctx, start, err)
	}
	p.countSkips(skips)

	csvPath, htmlPath, err := p.reports.WriteFiles(scan)
	if err != nil {
		return nil, p.fail(ctx, start, fmt.Errorf("write reports: %w", err))
	}

	p.sendResultMail(ctx, scan, csvPath, htmlPath)

	duration := p.now().Sub(start)
	if p.metrics != nil {
		p.metrics.ObserveRun(duration, len(scan.Records), false)
	}

	summary := &Summary{
		Ranked:   len(scan.Records),
		Skipped:  len(skips),
		CSVPath:  csvPath,
		HTMLPath: htmlPath,
		Duration: duration,
	}
	p.logger.WithFields(map[string]interface{}{
		"ranked":   summary.Ranked,
		"skipped":  summary.Skipped,
		"duration": duration,
	}).Info("Scan run finished")
	return summary, nil
}

// fail records the failure, writes the error report and notifies,
// then returns the original error for the caller.
func (p *Pipeline) fail(ctx context.Context, start time.Time, runErr error) error {
	p.logger.WithError(runErr).Error("Scan run failed")

	if p.metrics != nil {
		p.metrics.ObserveRun(p.now().Sub(start), 0, true)
	}

	var attachments []string
	if path, err := p.reports.WriteErrorReport(runErr); err == nil {
		attachments = append(attachments, path)
	}

	msg := notify.Message{
		Subject:     "❌ Daily stock scan failed",
		BodyHTML:    fmt.Sprintf("<pre>%v</pre>", runErr),
		Attachments: attachments,
	}
	if err := p.notifier.Send(ctx, msg); err != nil {
		p.logger.WithError(err).Warn("Failure notification not delivered")
	}

	return runErr
}

// sendResultMail delivers the ranked table. A delivery problem is
// logged but does not fail a run that already produced its files.
func (p *Pipeline) sendResultMail(ctx context.Context, scan *contracts.ScanReport, csvPath, htmlPath string) {
	table, err := report.TableHTML(scan.Top(p.cfg.TopN))
	if err != nil {
		p.logger.WithError(err).Warn("Mail body rendering failed")
		return
	}

	body := fmt.Sprintf(
		"<p>Hello, this is the automated daily stock scan.</p><p><b>Top %d</b>:</p>%s<p>Full results attached (CSV/HTML).</p>",
		p.cfg.TopN, table,
	)

	msg := notify.Message{
		Subject:     fmt.Sprintf("📈 Daily stock scan (%s)", scan.GeneratedAt.Format("2006-01-02 15:04")),
		BodyHTML:    body,
		Attachments: []string{csvPath, htmlPath},
	}
	if err := p.notifier.Send(ctx, msg); err != nil {
		p.logger.WithError(err).Error("Result notification not delivered")
		return
	}
	if p.metrics != nil {
		p.metrics.MailsSent.Inc()
	}
}

func (p *Pipeline) countSkips(skips []contracts.Skip) {
	if p.metrics == nil {
		return
	}
	for _, skip := range skips {
		p.metrics.TickersSkipped.WithLabelValues(string(skip.Reason)).Inc()
	}
}
