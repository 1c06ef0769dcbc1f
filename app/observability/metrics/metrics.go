package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RouteRequestsTotal       metric.Int64Counter
	RouteDurationSeconds     metric.Float64Histogram
	DraftFailuresTotal       metric.Int64Counter
	GeocodeMissesTotal       metric.Int64Counter
	PersistenceFailuresTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("cityscout")
		var err error
		m := &AppMetrics{}

		m.RouteRequestsTotal, err = meter.Int64Counter(
			"route_requests_total",
			metric.WithDescription("Total number of route generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_requests_total: %v", err)
		}

		m.RouteDurationSeconds, err = meter.Float64Histogram(
			"route_duration_seconds",
			metric.WithDescription("Duration of route generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_duration_seconds: %v", err)
		}

		m.DraftFailuresTotal, err = meter.Int64Counter(
			"draft_failures_total",
			metric.WithDescription("Total number of itinerary draft generation failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create draft_failures_total: %v", err)
		}

		m.GeocodeMissesTotal, err = meter.Int64Counter(
			"geocode_misses_total",
			metric.WithDescription("Total number of places left unresolved by the geocoder"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_misses_total: %v", err)
		}

		m.PersistenceFailuresTotal, err = meter.Int64Counter(
			"persistence_failures_total",
			metric.WithDescription("Total number of route history write failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create persistence_failures_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics: InitAppMetrics must be called before Get")
	}
	return appMetrics
}
