package prometheus

import (
	"time"

	"github.com/Furkanefeabus/teklif-backend/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation metrics
	QuotationOperationsCounter prometheus.CounterVec
	CustomerOperationsCounter  prometheus.CounterVec
	ProductOperationsCounter   prometheus.CounterVec
	ReminderOperationsCounter  prometheus.CounterVec

	// PDF rendering metrics
	PdfRenderCounter  prometheus.Counter
	PdfRenderDuration prometheus.Histogram
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	QuotationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_quotation_operations_total",
			Help: "Total number of quotation operations",
		},
		[]string{"operation"},
	)

	CustomerOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_customer_operations_total",
			Help: "Total number of customer operations",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	ReminderOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reminder_operations_total",
			Help: "Total number of reminder operations",
		},
		[]string{"operation"},
	)

	PdfRenderCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_pdf_renders_total",
			Help: "Total number of quotation PDF renders",
		},
	)

	PdfRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_pdf_render_duration_seconds",
			Help:    "Duration of quotation PDF rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordQuotationOperation increments the counter for quotation operations
func RecordQuotationOperation(operation string) {
	QuotationOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCustomerOperation increments the counter for customer operations
func RecordCustomerOperation(operation string) {
	CustomerOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordReminderOperation increments the counter for reminder operations
func RecordReminderOperation(operation string) {
	ReminderOperationsCounter.WithLabelValues(operation).Inc()
}
