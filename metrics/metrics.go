// Package metrics holds the Prometheus collectors shared by the store,
// sitemap and HTTP layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RepositoryFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glowblog", Name: "repository_fallback_total", Help: "Remote repository failures served from the local store, by operation."},
		[]string{"op"},
	)
	SitemapDegraded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "glowblog", Name: "sitemap_degraded_total", Help: "Sitemaps generated with static routes only because posts could not be loaded."},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glowblog", Name: "http_requests_total", Help: "HTTP requests by method and status code."},
		[]string{"method", "status"},
	)
)

// RegisterCollectors registers every collector on reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RepositoryFallbacks)
	reg.MustRegister(SitemapDegraded)
	reg.MustRegister(HTTPRequests)
}
