package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors for the service.
type Metrics struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	classifierTotal    *prometheus.CounterVec
	classifierDuration prometheus.Histogram
}

// NewMetrics registers collectors on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civicpulse_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "civicpulse_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.05, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"path", "method"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civicpulse_errors_total",
				Help: "Total number of request errors by code",
			},
			[]string{"path", "method", "code"},
		),
		classifierTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civicpulse_classifier_requests_total",
				Help: "Total number of classifier calls",
			},
			[]string{"outcome"},
		),
		classifierDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "civicpulse_classifier_duration_seconds",
				Help:    "Classifier call duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
	}
}

// RecordRequest observes one served HTTP request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError counts an error response by domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordClassifierCall observes one classifier round-trip.
func (m *Metrics) RecordClassifierCall(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.classifierTotal.WithLabelValues(outcome).Inc()
	m.classifierDuration.Observe(duration.Seconds())
}
