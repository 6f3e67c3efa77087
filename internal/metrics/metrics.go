// Package metrics defines the Prometheus collectors exported by the
// lexisearch service and the HTTP handler that scrapes them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector lexisearch exports, registered
// against a private registry rather than the global default so multiple
// instances can coexist in one process (tests, in particular).
type Metrics struct {
	registry *prometheus.Registry

	IngestDocumentsTotal *prometheus.CounterVec
	IngestDuration       *prometheus.HistogramVec
	QueryTotal           *prometheus.CounterVec
	QueryDuration        prometheus.Histogram
	IndexDocuments       prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		IngestDocumentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexisearch_ingest_documents_total",
				Help: "Documents processed by the indexer, by outcome.",
			},
			[]string{"status"},
		),
		IngestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lexisearch_ingest_duration_seconds",
				Help:    "Time to read, tokenize, and index one document.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		QueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexisearch_query_total",
				Help: "Search queries served, by outcome.",
			},
			[]string{"outcome"},
		),
		QueryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexisearch_query_duration_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		IndexDocuments: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lexisearch_index_documents",
				Help: "Documents currently held in the in-memory index.",
			},
		),
	}
	return m
}

// ObserveIngest satisfies indexer.Metrics: it records one ingest attempt's
// outcome and latency.
func (m *Metrics) ObserveIngest(status string, duration time.Duration) {
	m.IngestDocumentsTotal.WithLabelValues(status).Inc()
	m.IngestDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// ObserveQuery records one search request's outcome and latency.
func (m *Metrics) ObserveQuery(outcome string, duration time.Duration) {
	m.QueryTotal.WithLabelValues(outcome).Inc()
	m.QueryDuration.Observe(duration.Seconds())
}

// SetIndexSize reports the current document count.
func (m *Metrics) SetIndexSize(n int) {
	m.IndexDocuments.Set(float64(n))
}

// Handler returns the scrape endpoint for this Metrics' private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
