package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Scrape metrics
var (
	// ScrapesTotal counts scrape operations by kind ("show", "episode",
	// "resolve", "search") and outcome ("ok", "not_found", "error").
	ScrapesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrapes_total",
			Help: "Total number of scrape operations.",
		},
		[]string{"kind", "status"},
	)

	// RemoteRequestsTotal counts outbound requests by target
	// ("tmdb", "youtube", "imdb", "trakt") and outcome.
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_requests_total",
			Help: "Total number of outbound remote requests.",
		},
		[]string{"target", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		ScrapesTotal,
		RemoteRequestsTotal,
	)
}
