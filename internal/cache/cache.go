package cache

import "time"

// Cache is a key-value cache with per-entry TTL. Implementations may or may
// not be goroutine-safe depending on configuration.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value. A ttl <= 0 falls back to the cache's default TTL;
	// when that is zero too, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// GetOrLoad returns the cached value, or calls load and caches its result.
	// A load error is returned as-is and nothing is cached.
	GetOrLoad(key K, ttl time.Duration, load func() (V, error)) (V, error)

	// Upsert atomically replaces the entry with fn(current, found) and returns it.
	Upsert(key K, ttl time.Duration, fn func(current V, found bool) V) V

	// Delete removes a key if present.
	Delete(key K)

	// DeleteWhere removes every key matching pred and reports how many went.
	DeleteWhere(pred func(K) bool) int

	// Len returns the number of non-expired items currently stored.
	Len() int

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}
