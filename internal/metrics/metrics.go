package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	PaymentsInitiated        prometheus.Counter
	PaymentsFinalized        *prometheus.CounterVec
	DuplicateFinalizes       prometheus.Counter
	EnrollmentsGranted       prometheus.Counter
	WebhookSignatureFailures prometheus.Counter

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "payments_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		PaymentsInitiated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_initiated_total",
				Help: "Total number of payment initiations",
			},
		),
		PaymentsFinalized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_finalized_total",
				Help: "Total number of payment finalizations by outcome",
			},
			[]string{"outcome"},
		),
		DuplicateFinalizes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_duplicate_finalizes_total",
				Help: "Finalize calls that found an already terminal payment",
			},
		),
		EnrollmentsGranted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_enrollments_granted_total",
				Help: "Total number of enrollments granted",
			},
		),
		WebhookSignatureFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_webhook_signature_failures_total",
				Help: "Webhook deliveries rejected for a bad signature",
			},
		),

		ValidationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_validation_errors_total",
				Help: "Total number of validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_validation_duration_seconds",
				Help:    "Duration of validation operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"endpoint"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordPaymentInitiated() {
	m.PaymentsInitiated.Inc()
}

func (m *Metrics) RecordPaymentFinalized(outcome string) {
	m.PaymentsFinalized.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordDuplicateFinalize() {
	m.DuplicateFinalizes.Inc()
}

func (m *Metrics) RecordEnrollmentGranted() {
	m.EnrollmentsGranted.Inc()
}

func (m *Metrics) RecordWebhookSignatureFailure() {
	m.WebhookSignatureFailures.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
