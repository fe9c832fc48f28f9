package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters for the scraper's response caches. Every metric carries a
// "group" label naming the remote surface the cache fronts ("tmdb" for
// API payloads, "trailer" for liveness probe results), so hit rates can
// be read per surface.
var (
	// HitsTotal counts lookups answered from the cache, per group.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"group"},
	)

	// MissesTotal counts lookups that fell through to the remote, per group.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"group"},
	)

	// EvictionsTotal counts entries pushed out by the LRU policy, per group.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries evicted from the cache.",
		},
		[]string{"group"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
	)
}

// entriesCollector reports the live entry count of one cache group by
// calling sizeFunc at scrape time. Redis/Valkey expires fields behind
// the application's back, so a maintained gauge would drift; reading
// Len() when Prometheus scrapes cannot.
type entriesCollector struct {
	desc     *prometheus.Desc
	sizeFunc func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.sizeFunc()))
}

var (
	collectorMu sync.Mutex
	collectors  = make(map[string]*entriesCollector)
	// collectorReg is the registerer that receives entries collectors.
	// Tests substitute an isolated registry here.
	collectorReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector publishes a cache_entries gauge for the given
// group. An existing collector for the same group is replaced, so
// recreating a group's cache (a restart path, or tests) stays safe.
func registerEntriesCollector(group string, sizeFunc func() int) *entriesCollector {
	desc := prometheus.NewDesc(
		"cache_entries",
		"Current number of entries in the cache.",
		nil,
		prometheus.Labels{"group": group},
	)
	c := &entriesCollector{desc: desc, sizeFunc: sizeFunc}

	collectorMu.Lock()
	defer collectorMu.Unlock()

	if old, ok := collectors[group]; ok {
		collectorReg.Unregister(old)
	}
	collectors[group] = c
	_ = collectorReg.Register(c)
	return c
}

func unregisterEntriesCollector(group string) {
	collectorMu.Lock()
	defer collectorMu.Unlock()

	if c, ok := collectors[group]; ok {
		collectorReg.Unregister(c)
		delete(collectors, group)
	}
}
