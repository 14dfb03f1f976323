// Package metrics exposes Prometheus instrumentation for synchronization runs.
package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/source"
	apperrors "github.com/shiftboard/shiftboard-backend/pkg/errors"
)

// Sync failure reasons kept low-cardinality for alerting
const (
	ReasonInProgress   = "in_progress"
	ReasonUpstream     = "upstream_status"
	ReasonNotConfigure = "not_configured"
	ReasonTimeout      = "timeout"
	ReasonStore        = "store"
	ReasonUnknown      = "unknown"
)

// Config labels every series with the running service
type Config struct {
	ServiceName string
	Environment string
}

// SyncMetrics captures synchronization health
type SyncMetrics struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.GaugeVec
	warnings *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
}

// NewSyncMetrics creates and registers the sync collectors on registerer.
// A nil registerer means prometheus.DefaultRegisterer.
func NewSyncMetrics(registerer prometheus.Registerer, cfg Config) *SyncMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "shiftboard"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &SyncMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftboard_sync_runs_total",
			Help:        "Synchronization runs by entity and outcome.",
			ConstLabels: constLabels,
		}, []string{"entity", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftboard_sync_failures_total",
			Help:        "Failed synchronization runs by low-cardinality reason.",
			ConstLabels: constLabels,
		}, []string{"entity", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "shiftboard_sync_duration_seconds",
			Help:        "Synchronization latency from fetch to commit.",
			Buckets:     []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300},
			ConstLabels: constLabels,
		}, []string{"entity"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "shiftboard_sync_rows",
			Help:        "Rows stored by the last successful synchronization.",
			ConstLabels: constLabels,
		}, []string{"entity"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftboard_sync_parse_warnings_total",
			Help:        "Row-level CSV parse warnings raised during synchronization.",
			ConstLabels: constLabels,
		}, []string{"entity"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "shiftboard_sync_last_success_timestamp_seconds",
			Help:        "Unix time of the last successful synchronization.",
			ConstLabels: constLabels,
		}, []string{"entity"}),
	}

	registerer.MustRegister(m.runs, m.failures, m.duration, m.rows, m.warnings, m.lastRun)
	return m
}

// ObserveSync records the outcome of one run
func (m *SyncMetrics) ObserveSync(result domain.SyncResult) {
	if m == nil {
		return
	}

	entity := string(result.Entity)
	status := "success"
	if !result.Success {
		status = "failure"
		m.failures.WithLabelValues(entity, ClassifySyncFailure(result.Err)).Inc()
	}

	m.runs.WithLabelValues(entity, status).Inc()
	m.duration.WithLabelValues(entity).Observe((time.Duration(result.DurationMS) * time.Millisecond).Seconds())
	if n := len(result.Warnings); n > 0 {
		m.warnings.WithLabelValues(entity).Add(float64(n))
	}
	if result.Success {
		m.rows.WithLabelValues(entity).Set(float64(result.Count))
		m.lastRun.WithLabelValues(entity).Set(float64(result.StartedAt.Add(time.Duration(result.DurationMS) * time.Millisecond).Unix()))
	}
}

// ClassifySyncFailure maps a sync error to a low-cardinality reason
func ClassifySyncFailure(err error) string {
	var appErr *apperrors.AppError
	switch {
	case err == nil:
		return ReasonUnknown
	case errors.Is(err, domain.ErrSyncInProgress):
		return ReasonInProgress
	case errors.Is(err, source.ErrUnexpectedStatus):
		return ReasonUpstream
	case errors.Is(err, source.ErrNotConfigured):
		return ReasonNotConfigure
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &appErr):
		return ReasonStore
	default:
		return ReasonUnknown
	}
}
