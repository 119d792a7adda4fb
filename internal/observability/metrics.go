// Package observability holds the Prometheus collectors shared by the store and HTTP layers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperationLatency records document store call latency by collection, operation and outcome.
	StoreOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_store_operation_latency_seconds",
		Help:    "Document store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "operation", "status"})

	// HTTPRequestsTotal counts handled requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ImportedDocuments counts documents written by the WordPress importer.
	ImportedDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_imported_documents_total",
		Help: "Total number of documents written by the WordPress importer",
	}, []string{"collection"})
)

// ObserveStore records the latency of a store call that started at start.
func ObserveStore(collection, operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreOperationLatency.WithLabelValues(collection, operation, status).Observe(time.Since(start).Seconds())
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, route, status string, start time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
