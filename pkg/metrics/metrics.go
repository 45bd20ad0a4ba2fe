// Package metrics exposes the prometheus collectors of the API server.
package metrics

import (
	"context"
	"time"

	"github.com/faciam-dev/customfields/internal/logger"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cf_api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"method", "path", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cf_api_latency_seconds",
			Help:    "API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	Fields = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cf_fields_total",
			Help: "Number of custom fields by selectable type",
		},
		[]string{"selectable_type"},
	)
	SelectionCreates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cf_selection_creates_total",
			Help: "Selection field create attempts by outcome",
		},
		[]string{"plain_type", "status"},
	)
	AuditEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cf_audit_events_total",
			Help: "Audit log events",
		},
		[]string{"action"},
	)
	AuditErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cf_audit_errors_total",
			Help: "Audit write errors",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		APILatency,
		Fields,
		SelectionCreates,
		AuditEvents,
		AuditErrors,
	)
}

// FieldCounter is implemented by stores able to count fields per selectable type.
type FieldCounter interface {
	CountFieldsByType(ctx context.Context) (map[string]int, error)
}

// RefreshFieldGauge sets the field gauge from the current counts.
func RefreshFieldGauge(ctx context.Context, repo FieldCounter) error {
	counts, err := repo.CountFieldsByType(ctx)
	if err != nil {
		return err
	}
	Fields.Reset()
	for t, n := range counts {
		Fields.WithLabelValues(t).Set(float64(n))
	}
	return nil
}

// StartFieldGauge schedules RefreshFieldGauge every interval and runs it once
// immediately. The returned scheduler must be stopped by the caller.
func StartFieldGauge(ctx context.Context, repo FieldCounter, interval time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	_, err := s.Every(interval).Do(func() {
		if err := RefreshFieldGauge(ctx, repo); err != nil {
			logger.L.Error("refresh field gauge", "err", err)
		}
	})
	if err != nil {
		return nil, err
	}
	s.StartAsync()
	return s, nil
}
