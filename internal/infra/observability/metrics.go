// Package observability owns the Prometheus metrics exported at /metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"nutrilens/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ service.MetricsRecorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	moderationDecisions  *prometheus.CounterVec
	collaboratorFailures *prometheus.CounterVec
	mediaLeaks           prometheus.Counter
	requestDuration      *prometheus.HistogramVec
}

// NewMetrics registers every metric in a private registry so each call is independent.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		moderationDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrilens_moderation_decisions_total",
				Help: "Moderation transitions applied, by workflow and action.",
			},
			[]string{"workflow", "action"},
		),
		collaboratorFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrilens_collaborator_failures_total",
				Help: "Failed calls to external collaborators.",
			},
			[]string{"collaborator"},
		),
		mediaLeaks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nutrilens_media_leaks_total",
				Help: "Uploaded files that could not be released and were left behind.",
			},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nutrilens_http_request_duration_seconds",
				Help:    "HTTP request duration by method, route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) IncrModerationDecision(workflow, action string) {
	m.moderationDecisions.WithLabelValues(workflow, action).Inc()
}

func (m *Metrics) IncrCollaboratorFailure(collaborator string) {
	m.collaboratorFailures.WithLabelValues(collaborator).Inc()
}

func (m *Metrics) IncrMediaLeak() {
	m.mediaLeaks.Inc()
}

// RecordRequest observes one served HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
