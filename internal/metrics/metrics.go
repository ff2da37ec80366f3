// Package metrics exposes Prometheus metrics for scheduled scan runs.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hsulin/stockscan/pkg/logger"
)

// Metrics holds all Prometheus metrics for the scanner.
type Metrics struct {
	ScansTotal     *prometheus.CounterVec // labels: result=ok|error
	ScanDuration   prometheus.Histogram
	TickersRanked  prometheus.Gauge
	TickersSkipped *prometheus.CounterVec // labels: reason
	MailsSent      prometheus.Counter

	registry *prometheus.Registry
}

// New registers and returns all scanner metrics on a private
// registry, so tests can create as many instances as they need.
func New() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockscan_scans_total",
			Help: "Total scan runs by result",
		}, []string{"result"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockscan_scan_duration_seconds",
			Help:    "Wall time of a full scan run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		TickersRanked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockscan_tickers_ranked",
			Help: "Tickers in the most recent ranked report",
		}),
		TickersSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockscan_tickers_skipped_total",
			Help: "Tickers excluded from reports by reason",
		}, []string{"reason"}),
		MailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockscan_mails_sent_total",
			Help: "Notification mails delivered",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ScansTotal, m.ScanDuration, m.TickersRanked, m.TickersSkipped, m.MailsSent,
	)
	return m
}

// ObserveRun records the outcome of one scan run.
func (m *Metrics) ObserveRun(duration time.Duration, ranked int, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	m.ScansTotal.WithLabelValues(result).Inc()
	m.ScanDuration.Observe(duration.Seconds())
	if !failed {
		m.TickersRanked.Set(float64(ranked))
	}
}

// Serve runs an HTTP listener exposing /metrics until ctx is done.
func (m *Metrics) Serve(ctx context.Context, port string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", port).Info("Metrics listener started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Metrics listener failed")
	}
}

// Handler returns the /metrics handler, used by tests.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
