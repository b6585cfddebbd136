package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API. It covers clock
// event ingestion, HTTP request durations, live presence subscribers
// and the nightly auto-resolution job.
type Metrics struct {
	ClockEvents         *prometheus.CounterVec   // Counter for ingested clock events
	RequestDuration     *prometheus.HistogramVec // Histogram for HTTP request durations
	PresenceSubscribers prometheus.Gauge         // Gauge for open presence streams
	AutoResolvedDays    prometheus.Counter       // Counter for records closed by the scheduler
	BulkImportRows      *prometheus.CounterVec   // Counter for employee import rows
}

// NewMetrics registers the application collectors on reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ClockEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "bioclock_clock_events_total",
			Help: "Total number of ingested clock events",
		}, []string{"kind"}), // kind: in, out
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bioclock_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		PresenceSubscribers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "bioclock_presence_subscribers",
			Help: "Number of open presence event streams",
		}),
		AutoResolvedDays: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "bioclock_auto_resolved_records_total",
			Help: "Total attendance records closed by the auto-resolution job",
		}),
		BulkImportRows: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "bioclock_bulk_import_rows_total",
			Help: "Employee bulk import rows by outcome",
		}, []string{"outcome"}), // outcome: created, skipped
	}
}
