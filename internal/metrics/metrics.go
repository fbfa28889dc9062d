package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_resolutions_total",
		Help: "Answered chat messages by answer source",
	}, []string{"source"})

	resolutionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frontdesk_resolution_duration_seconds",
		Help:    "Time to resolve a chat message by answer source",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
	}, []string{"source"})

	upstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_upstream_errors_total",
		Help: "Failed or unusable generative model calls",
	})

	catalogEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "frontdesk_catalog_entries",
		Help: "Entries loaded per static table",
	}, []string{"table"})

	registerOnce sync.Once
)

// Init registers the collectors with the default registry.
// Must be called once at startup; later calls are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(resolutions, resolutionDuration, upstreamErrors, catalogEntries)
	})
}

// ObserveResolution records one answered message.
func ObserveResolution(source string, elapsed time.Duration) {
	resolutions.WithLabelValues(source).Inc()
	resolutionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// UpstreamError records a generative model call that produced no answer.
func UpstreamError() {
	upstreamErrors.Inc()
}

// SetCatalogSize records how many rows a static table holds.
func SetCatalogSize(table string, n int) {
	catalogEntries.WithLabelValues(table).Set(float64(n))
}
