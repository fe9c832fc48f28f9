package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// The redis provider tests need a running Redis 7.4+/Valkey 8+ server.
// Set REDIS_ADDRESS (e.g., "localhost:6379") to enable them; they are
// skipped by default.

func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}
	return addr
}

// flushTestRedisDB clears all data in DB 15 so tests start with a clean slate.
func flushTestRedisDB(t *testing.T, addr string) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush Redis test DB: %v", err)
	}
}

func newTestRedisCache(t *testing.T) Cache {
	t.Helper()
	return newTestRedisCacheWithConfig(t, 100, 10*time.Second, nil)
}

func newTestRedisCacheWithConfig(t *testing.T, size int, ttl time.Duration, onEvict EvictCallback) Cache {
	t.Helper()
	addr := skipIfNoRedis(t)
	flushTestRedisDB(t, addr)
	c, err := New("redis", ProviderConfig{
		Size:         size,
		TTL:          ttl,
		RedisAddress: addr,
		RedisDB:      15, // use a high DB number for tests
		OnEvict:      onEvict,
	})
	if err != nil {
		t.Fatalf("New redis cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_ShowPayloadRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)

	val, ok := c.Get(showURL)
	if ok {
		t.Fatal("Expected miss before the response is cached")
	}
	if val != nil {
		t.Fatalf("Expected nil value on miss, got %v", val)
	}

	c.Set(showURL, []byte(showPayload))
	val, ok = c.Get(showURL)
	if !ok {
		t.Fatal("Expected hit after caching the response")
	}
	if string(val) != showPayload {
		t.Fatalf("Expected cached payload back, got %q", string(val))
	}
}

func TestRedisCache_Contains(t *testing.T) {
	c := newTestRedisCache(t)

	if c.Contains(episodeURL) {
		t.Fatal("Expected uncached episode URL to not be contained")
	}

	c.Set(episodeURL, []byte(`{"id":63056,"episode_number":1}`))
	if !c.Contains(episodeURL) {
		t.Fatal("Expected cached episode URL to be contained")
	}
}

func TestRedisCache_Len(t *testing.T) {
	c := newTestRedisCacheWithConfig(t, 100, 10*time.Second, nil)

	n := c.Len()
	if n != 0 {
		t.Fatalf("Expected Len 0 on clean DB, got %d", n)
	}

	c.Set(showURL, []byte(showPayload))
	c.Set(seasonURL, []byte(`{"season_number":1}`))

	if c.Len() != 2 {
		t.Fatalf("Expected Len 2, got %d", c.Len())
	}
}

func TestRedisCache_GroupNamespacesKeys(t *testing.T) {
	addr := skipIfNoRedis(t)
	flushTestRedisDB(t, addr)

	c, err := New("redis", ProviderConfig{
		Size:         10,
		TTL:          time.Minute,
		RedisAddress: addr,
		RedisDB:      15,
		Group:        "tmdb",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Set(showURL, []byte(showPayload))

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := client.HExists(ctx, "tvmeta:tmdb:data", showURL).Result()
	if err != nil {
		t.Fatalf("HExists: %v", err)
	}
	if !n {
		t.Fatal("Expected the cached response under the group-prefixed data hash")
	}
}

func TestRedisCache_LRU_EvictsOldestVideo(t *testing.T) {
	evicted := make([]string, 0)
	onEvict := func(key string, _ []byte) {
		evicted = append(evicted, key)
	}

	// Max size 2 so caching a third liveness result evicts the oldest.
	c := newTestRedisCacheWithConfig(t, 2, 10*time.Second, onEvict)

	c.Set("dQw4w9WgXcQ", []byte("1"))
	c.Set("oHg5SJYRHA0", []byte("1"))
	c.Set("y6120QOlsfU", []byte("0"))

	if c.Contains("dQw4w9WgXcQ") {
		t.Fatal("Evicted video key should not be present")
	}
	if !c.Contains("oHg5SJYRHA0") || !c.Contains("y6120QOlsfU") {
		t.Fatal("Newer video keys should still be present")
	}
	if len(evicted) != 1 || evicted[0] != "dQw4w9WgXcQ" {
		t.Fatalf("Expected eviction of the oldest video key, got %v", evicted)
	}
}

func TestRedisCache_LRU_TouchPromotesEntry(t *testing.T) {
	// Max size 2. Cache two videos, re-check the first, cache a third.
	// The untouched second key must be the one evicted.
	c := newTestRedisCacheWithConfig(t, 2, 10*time.Second, nil)

	c.Set("dQw4w9WgXcQ", []byte("1"))
	c.Set("oHg5SJYRHA0", []byte("1"))

	_, _ = c.Get("dQw4w9WgXcQ")

	c.Set("y6120QOlsfU", []byte("0"))

	if c.Contains("oHg5SJYRHA0") {
		t.Fatal("Expected the untouched video key to be evicted")
	}
	if !c.Contains("dQw4w9WgXcQ") || !c.Contains("y6120QOlsfU") {
		t.Fatal("Touched and newest video keys should still be present")
	}
}

func TestRedisCache_Close(t *testing.T) {
	addr := skipIfNoRedis(t)
	flushTestRedisDB(t, addr)
	c, err := New("redis", ProviderConfig{
		Size:         10,
		TTL:          time.Minute,
		RedisAddress: addr,
		RedisDB:      15,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
