// Package metrics tracks scraping activity with Prometheus collectors.
//
// A run is short-lived, so collectors live on a private registry instead of the
// global one and can be dumped in the text exposition format at the end of a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sail_stats"

// Fetch kinds used as the "kind" label
const (
	KindListing = "listing"
	KindEntries = "entries"
	KindEvent   = "event"
)

// Metrics holds all collectors for one run
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched  *prometheus.CounterVec
	FetchErrors   *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	TripsParsed   prometheus.Counter
	RowsCollected prometheus.Counter
	SkippedRows   prometheus.Counter
}

// New creates collectors registered on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "The total number of pages fetched",
		}, []string{"kind"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "The total number of failed page fetches",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken to fetch a page",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		TripsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_parsed_total",
			Help:      "The total number of trip pages parsed",
		}),
		RowsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_collected_total",
			Help:      "The total number of participant rows collected",
		}),
		SkippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_rows_skipped_total",
			Help:      "Roster rows dropped because a name cell was missing",
		}),
	}

	m.registry.MustRegister(
		m.PagesFetched,
		m.FetchErrors,
		m.FetchDuration,
		m.TripsParsed,
		m.RowsCollected,
		m.SkippedRows,
	)
	return m
}

// ObserveFetch records one page fetch of the given kind
func (m *Metrics) ObserveFetch(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		m.FetchErrors.WithLabelValues(kind).Inc()
		return
	}
	m.PagesFetched.WithLabelValues(kind).Inc()
}

// IncTrips counts one parsed trip
func (m *Metrics) IncTrips() {
	if m == nil {
		return
	}
	m.TripsParsed.Inc()
}

// AddRows counts collected participant rows
func (m *Metrics) AddRows(n int) {
	if m == nil {
		return
	}
	m.RowsCollected.Add(float64(n))
}

// AddSkipped counts dropped roster rows
func (m *Metrics) AddSkipped(n int) {
	if m == nil {
		return
	}
	m.SkippedRows.Add(float64(n))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps all collectors to path in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
