package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ChatRequestsTotal          metric.Int64Counter
	ChatFallbackTotal          metric.Int64Counter
	ChatDurationSeconds        metric.Float64Histogram
	PlaceResolutionErrorsTotal metric.Int64Counter
	PlaceLookupDurationSeconds metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("descubre-api")
		var err error
		m := &AppMetrics{}

		m.ChatRequestsTotal, err = meter.Int64Counter(
			"chat_requests_total",
			metric.WithDescription("Total number of chat messages processed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_requests_total: %v", err)
		}

		m.ChatFallbackTotal, err = meter.Int64Counter(
			"chat_fallback_total",
			metric.WithDescription("Total number of responses produced by the deterministic fallback path"),
			metric.WithUnit("{response}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_fallback_total: %v", err)
		}

		m.ChatDurationSeconds, err = meter.Float64Histogram(
			"chat_duration_seconds",
			metric.WithDescription("Duration of chat message handling in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_duration_seconds: %v", err)
		}

		m.PlaceResolutionErrorsTotal, err = meter.Int64Counter(
			"place_resolution_errors_total",
			metric.WithDescription("Total number of place references that could not be resolved"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create place_resolution_errors_total: %v", err)
		}

		m.PlaceLookupDurationSeconds, err = meter.Float64Histogram(
			"place_lookup_duration_seconds",
			metric.WithDescription("Duration of place lookups in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create place_lookup_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, or nil when
// InitAppMetrics has not run (e.g. in unit tests).
func Get() *AppMetrics {
	return appMetrics
}
