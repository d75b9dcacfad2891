package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "industrimath"

// Metrics are the service's Prometheus collectors.
type Metrics struct {
	// Requests counts API calls by model and outcome ("ok", "invalid", "error").
	Requests *prometheus.CounterVec
	// SolveDuration observes the time spent in a calculation by model.
	SolveDuration *prometheus.HistogramVec
	// Corners observes how many feasible corner points a production solve evaluated.
	Corners prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "API requests by model and status.",
		}, []string{"model", "status"}),
		SolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent computing a model result.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"model"}),
		Corners: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "feasible_corners",
			Help:      "Feasible corner points evaluated per production solve.",
			Buckets:   prometheus.LinearBuckets(1, 2, 12),
		}),
	}
}
