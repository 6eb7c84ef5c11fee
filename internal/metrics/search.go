package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "appindex",
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CursorSearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "appindex",
			Name:      "search_cursor_duration_seconds",
			Help:      "Cursor resume duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CursorsMinted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "appindex",
			Name:      "search_cursors_minted_total",
			Help:      "Total number of application-level cursors minted",
		},
	)

	DeleteApplicationTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "appindex",
			Name:      "delete_application_total",
			Help:      "Total number of application bulk delete operations",
		},
	)

	DeleteApplicationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "appindex",
			Name:      "delete_application_duration_seconds",
			Help:      "Application bulk delete fan-out duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	BackendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appindex",
			Name:      "backend_failures_total",
			Help:      "Total number of search backend failures",
		},
		[]string{"backend"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(CursorSearchDuration)
	prometheus.MustRegister(CursorsMinted)
	prometheus.MustRegister(DeleteApplicationTotal)
	prometheus.MustRegister(DeleteApplicationDuration)
	prometheus.MustRegister(BackendFailuresTotal)
	searchMetricsRegistered = true
}
