package prometheus

import (
	"time"

	"github.com/vicriadty/cafe-app-ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation metrics
	RestaurantOperationsCounter prometheus.CounterVec
	MenuOperationsCounter       prometheus.CounterVec
	OrderOperationsCounter      prometheus.CounterVec
	OrderStatusCounter          prometheus.CounterVec

	// Assistant metrics
	AssistantRequestsCounter prometheus.Counter
	AssistantFallbackCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
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

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	RestaurantOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_restaurant_operations_total",
			Help: "Total number of restaurant operations",
		},
		[]string{"operation"},
	)

	MenuOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_menu_operations_total",
			Help: "Total number of menu operations",
		},
		[]string{"operation"},
	)

	OrderOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	OrderStatusCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_status_transitions_total",
			Help: "Total number of order status transitions",
		},
		[]string{"from", "to"},
	)

	AssistantRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_requests_total",
			Help: "Total number of assistant chat requests",
		},
	)

	AssistantFallbackCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_fallbacks_total",
			Help: "Total number of assistant fallback responses",
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

// RecordRestaurantOperation increments the counter for restaurant operations
func RecordRestaurantOperation(operation string) {
	RestaurantOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMenuOperation increments the counter for menu operations
func RecordMenuOperation(operation string) {
	MenuOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderOperation increments the counter for order operations
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderStatusTransition increments the counter for status transitions
func RecordOrderStatusTransition(from, to string) {
	OrderStatusCounter.WithLabelValues(from, to).Inc()
}
