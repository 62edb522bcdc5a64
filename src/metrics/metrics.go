// Package metrics exposes Prometheus counters for ingestion runs and reports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of the service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	recordsFetchedTotal *prometheus.CounterVec
	rowsInsertedTotal   *prometheus.CounterVec
	ingestRunsTotal     *prometheus.CounterVec
	ingestDuration      *prometheus.HistogramVec
	reportRunsTotal     *prometheus.CounterVec
	reportCacheTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them on a private registry
// together with the Go runtime collectors.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.recordsFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_records_fetched_total",
			Help: "Total number of catalog records fetched from the API",
		},
		[]string{"classification"},
	)
	m.rowsInsertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_rows_inserted_total",
			Help: "Total number of new rows written per table",
		},
		[]string{"table"},
	)
	m.ingestRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_ingest_runs_total",
			Help: "Total number of ingestion runs by outcome",
		},
		[]string{"classification", "status"}, // status: success or the error kind
	)
	m.ingestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_ingest_duration_seconds",
			Help:    "Time taken by a complete ingestion run",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"classification"},
	)
	m.reportRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_report_runs_total",
			Help: "Total number of report executions",
		},
		[]string{"report", "status"},
	)
	m.reportCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_report_cache_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	for _, c := range []prometheus.Collector{
		m.recordsFetchedTotal,
		m.rowsInsertedTotal,
		m.ingestRunsTotal,
		m.ingestDuration,
		m.reportRunsTotal,
		m.reportCacheTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) RecordFetched(classification string, n int) {
	if m == nil {
		return
	}
	m.recordsFetchedTotal.WithLabelValues(classification).Add(float64(n))
}

func (m *Metrics) RecordInserted(table string, n int64) {
	if m == nil {
		return
	}
	m.rowsInsertedTotal.WithLabelValues(table).Add(float64(n))
}

func (m *Metrics) RecordIngest(classification, status string, seconds float64) {
	if m == nil {
		return
	}
	m.ingestRunsTotal.WithLabelValues(classification, status).Inc()
	m.ingestDuration.WithLabelValues(classification).Observe(seconds)
}

func (m *Metrics) RecordReport(report, status string) {
	if m == nil {
		return
	}
	m.reportRunsTotal.WithLabelValues(report, status).Inc()
}

func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.reportCacheTotal.WithLabelValues(result).Inc()
}
