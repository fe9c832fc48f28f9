package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig describes one cache instance. The scraper creates one
// instance per remote surface it fronts, all sharing the provider named
// in the runtime configuration.
type ProviderConfig struct {
	// Size caps the number of entries before LRU eviction kicks in.
	Size int

	// TTL bounds how long a cached response stays valid. TMDB records
	// and trailer liveness results both go stale, so entries expire
	// even when never evicted.
	TTL time.Duration

	// OnEvict is called when the LRU policy drops an entry. Providers
	// without eviction callbacks ignore it.
	OnEvict EvictCallback

	// Logger receives provider errors. Nil discards them.
	Logger Logger

	// RedisAddress, RedisPassword, and RedisDB configure the redis
	// provider and are ignored by the in-memory one.
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Group names the remote surface this cache fronts ("tmdb",
	// "trailer"). A non-empty group turns on metric instrumentation
	// and namespaces the provider's storage keys.
	Group string
}

// Provider constructs a Cache from a ProviderConfig.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register adds a provider under the given name. Providers register
// themselves from init, so a duplicate name or a nil constructor is a
// programming error and panics.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New builds a cache from the named provider. With a Group set, the
// result is wrapped so hits, misses, and evictions count toward that
// group's metrics, and a lazy gauge reports its entry count at scrape
// time.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	original := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}

	return newMeteredCache(inner, group), nil
}

// RegisteredProviders returns the registered provider names, sorted.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
