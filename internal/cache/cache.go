package cache

// EvictCallback is called when an entry is evicted from the cache.
// Not all providers support eviction callbacks (e.g., Redis relies on server-side eviction).
type EvictCallback func(key string, value []byte)

// Logger receives error reports from cache operations. It is a minimal
// facade so the cache layer does not depend on a concrete logging library.
type Logger interface {
	Error(msg string, err error)
}

// Cache defines the interface for key-value caching with LRU semantics.
// The scraper keeps one cache group per remote surface (TMDB responses,
// trailer liveness pages, rating pages) so each can be sized and observed
// independently. Implementations may be in-memory or backed by Redis/Valkey.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key. If the key already exists, it is overwritten.
	Set(key string, value []byte)

	// Contains checks whether a key exists in the cache without affecting LRU ordering.
	Contains(key string) bool

	// Len returns the number of entries currently in the cache.
	// For external backends like Redis, this may reflect the total key count in the configured database.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	// For in-memory caches, this is a no-op.
	Close() error
}
