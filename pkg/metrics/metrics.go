package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is the dedicated registry served at /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Histogram buckets tuned for API response times from milliseconds up
	// to slow external payment calls
	apiBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Metrics
	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_operation_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of entries held in a cache",
		},
		[]string{"cache_name"},
	)

	// External Payment API Metrics
	StripeRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_client_operation_duration_seconds",
			Help:    "Stripe client operation duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"operation", "status"},
	)

	StripeRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_client_operation_total",
			Help: "Total number of Stripe client operations",
		},
		[]string{"operation", "status"},
	)

	// Storage Client Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	UserRegistrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhive_user_registrations_total",
			Help: "Total user registration attempts",
		},
		[]string{"status"},
	)

	SessionModerations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhive_session_moderations_total",
			Help: "Total session moderation decisions",
		},
		[]string{"decision"},
	)

	Bookings = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhive_bookings_total",
			Help: "Total session booking attempts",
		},
		[]string{"status"},
	)

	PaymentIntents = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhive_payment_intents_total",
			Help: "Total payment intent operations",
		},
		[]string{"operation", "status"},
	)

	ReviewSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhive_review_submissions_total",
			Help: "Total review submissions",
		},
		[]string{"status"},
	)

	// Infrastructure metrics
	goroutineCount = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "go_app_goroutines",
			Help: "Number of goroutines",
		},
	)
)

// Init registers process-level collectors; serviceName is attached as a
// constant label on the registry via a build info gauge.
func Init(serviceName string) {
	buildInfo := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Application build information",
		},
		[]string{"service"},
	)
	buildInfo.WithLabelValues(serviceName).Set(1)
}

// RecordInfrastructureMetrics starts a background collector for
// process-level runtime metrics.
func RecordInfrastructureMetrics() {
	go func() {
		for {
			goroutineCount.Set(float64(runtime.NumGoroutine()))
			time.Sleep(15 * time.Second)
		}
	}()
}

// MeasureDuration returns elapsed seconds since start
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
