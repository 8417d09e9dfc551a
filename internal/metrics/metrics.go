// Package metrics exposes Prometheus counters for the navigation and
// document-store traffic. The dev server serves them on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Navigations counts route resolutions by route identifier.
	Navigations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billed_navigations_total",
			Help: "Route resolutions by route identifier.",
		},
		[]string{"route"},
	)

	// StoreRequests counts document-store calls by operation and outcome.
	StoreRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billed_store_requests_total",
			Help: "Document store calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(Navigations, StoreRequests)
}

// ObserveStoreRequest records one store call.
func ObserveStoreRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreRequests.WithLabelValues(operation, outcome).Inc()
}
