// Package metrics provides Prometheus metrics for HTTP server monitoring.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ReportsAnonymized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_anonymized_total",
			Help: "Total reports successfully anonymized",
		},
	)

	ReportsSummarized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_summarized_total",
			Help: "Total reports summarized, by cache outcome",
		},
		[]string{"cached"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ReportsAnonymized)
	prometheus.MustRegister(ReportsSummarized)
}
