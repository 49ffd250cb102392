package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// RiskdMetrics aggregates the request-level counters and latency histograms
// for the risk preview service.
type RiskdMetrics struct {
	Requests *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Guards   *prometheus.CounterVec
}

var (
	riskdOnce     sync.Once
	riskdRegistry *RiskdMetrics
)

// Riskd returns the lazily-initialised metrics registry for the risk preview
// service, registered against the default prometheus registerer.
func Riskd() *RiskdMetrics {
	riskdOnce.Do(func() {
		riskdRegistry = &RiskdMetrics{
			Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caucion",
				Subsystem: "riskd",
				Name:      "requests_total",
				Help:      "Total HTTP requests segmented by route and status class.",
			}, []string{"route", "status"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caucion",
				Subsystem: "riskd",
				Name:      "errors_total",
				Help:      "Total HTTP error responses segmented by route and error code.",
			}, []string{"route", "code"}),
			Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "caucion",
				Subsystem: "riskd",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution for HTTP handlers.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route"}),
			Guards: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "caucion",
				Subsystem: "riskd",
				Name:      "guard_evaluations_total",
				Help:      "Guard predicate evaluations segmented by action and verdict.",
			}, []string{"action", "verdict"}),
		}
		prometheus.MustRegister(
			riskdRegistry.Requests,
			riskdRegistry.Errors,
			riskdRegistry.Latency,
			riskdRegistry.Guards,
		)
	})
	return riskdRegistry
}
