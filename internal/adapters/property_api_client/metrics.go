package property_api_client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "property_api_requests_total",
		Help: "Requests sent to the property API by operation and resulting status code",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "property_api_request_duration_seconds",
		Help:    "Latency of single property API requests (one attempt)",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "property_api_retries_total",
		Help: "Retries of read operations after a transient failure",
	}, []string{"operation"})
)
