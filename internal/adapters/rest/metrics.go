package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_http_requests_total",
	Help: "Requests served by the catalog HTTP facade by route and status code",
}, []string{"method", "route", "status"})
