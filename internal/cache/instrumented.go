package cache

// meteredCache wraps a provider's Cache and feeds the per-group hit,
// miss, eviction, and size metrics. The factory applies the wrapper
// whenever a Group is configured, so the loader and trailer checker
// never touch metrics themselves.
type meteredCache struct {
	inner Cache
	group string
}

func newMeteredCache(inner Cache, group string) *meteredCache {
	registerEntriesCollector(group, inner.Len)
	return &meteredCache{inner: inner, group: group}
}

func (c *meteredCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *meteredCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *meteredCache) Contains(key string) bool {
	return c.inner.Contains(key)
}

func (c *meteredCache) Len() int {
	return c.inner.Len()
}

// Close drops the group's entries gauge and closes the wrapped cache.
func (c *meteredCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
