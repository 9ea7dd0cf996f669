// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for CatalogLoads.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// CatalogLoads counts physical index reads.
	CatalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streammuse_catalog_loads_total",
			Help: "Catalog index reads by outcome",
		},
		[]string{"outcome"},
	)

	// CatalogGroups is the number of card groups currently served.
	CatalogGroups = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "streammuse_catalog_groups",
			Help: "Card groups in the loaded catalog",
		},
	)

	// HTTPRequests counts served requests.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streammuse_http_requests_total",
			Help: "HTTP requests by method and status code",
		},
		[]string{"method", "code"},
	)

	// HTTPDuration observes request latency.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streammuse_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// VotesRecorded counts acknowledged votes.
	VotesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streammuse_votes_recorded_total",
			Help: "Votes written to the vote log",
		},
	)
)

func init() {
	prometheus.MustRegister(CatalogLoads, CatalogGroups, HTTPRequests, HTTPDuration, VotesRecorded)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
