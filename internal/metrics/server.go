package metrics

import (
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultPort is where the scrape endpoint listens when none is configured.
const defaultPort = 9090

// NewHTTPServer builds the server exposing the scrape counters and cache
// gauges at /metrics. It runs beside the API server so operational
// traffic never mixes with scraping requests.
func NewHTTPServer(address string, port int) *http.Server {
	if port == 0 {
		port = defaultPort
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:    net.JoinHostPort(address, strconv.Itoa(port)),
		Handler: mux,
	}
}
