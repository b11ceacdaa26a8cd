package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	ttl       time.Duration
	expiresAt time.Time // zero means no expiration
}

func (e entry[V]) expired(at time.Time) bool {
	return !e.expiresAt.IsZero() && at.After(e.expiresAt)
}

// SimpleCache is a map-backed cache with optional locking. Expired entries are
// dropped lazily or via PurgeExpired; there is no background janitor.
type SimpleCache[K comparable, V any] struct {
	// nil when the cache is not goroutine-safe
	muPtr *sync.RWMutex

	defaultTTL time.Duration
	sliding    bool
	items      map[K]entry[V]
}

// Options controls construction of a SimpleCache.
type Options struct {
	// ConcurrencySafe guards every operation with a RWMutex.
	ConcurrencySafe bool

	// DefaultTTL applies when Set is called with ttl <= 0.
	DefaultTTL time.Duration

	// Sliding pushes an entry's expiry forward by its TTL on every hit.
	Sliding bool
}

// NewSimpleCache constructs a new SimpleCache with the given options.
func NewSimpleCache[K comparable, V any](opts Options) *SimpleCache[K, V] {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &SimpleCache[K, V]{
		muPtr:      mu,
		defaultTTL: opts.DefaultTTL,
		sliding:    opts.Sliding,
		items:      make(map[K]entry[V]),
	}
}

func (c *SimpleCache[K, V]) lockR() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.RLock()
	return c.muPtr.RUnlock
}

func (c *SimpleCache[K, V]) lockW() func() {
	if c.muPtr == nil {
		return func() {}
	}
	c.muPtr.Lock()
	return c.muPtr.Unlock
}

// now is swapped by tests.
var now = time.Now

func (c *SimpleCache[K, V]) newEntry(value V, ttl time.Duration) entry[V] {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	e := entry[V]{value: value, ttl: ttl}
	if ttl > 0 {
		e.expiresAt = now().Add(ttl)
	}
	return e
}

// lookup must run under a lock; the write lock when sliding.
func (c *SimpleCache[K, V]) lookup(key K) (V, bool) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	ts := now()
	if e.expired(ts) {
		return zero, false
	}
	if c.sliding && e.ttl > 0 {
		e.expiresAt = ts.Add(e.ttl)
		c.items[key] = e
	}
	return e.value, true
}

// Get implements Cache.Get.
func (c *SimpleCache[K, V]) Get(key K) (V, bool) {
	var unlock func()
	if c.sliding {
		unlock = c.lockW()
	} else {
		unlock = c.lockR()
	}
	defer unlock()
	return c.lookup(key)
}

// Set implements Cache.Set.
func (c *SimpleCache[K, V]) Set(key K, value V, ttl time.Duration) {
	unlock := c.lockW()
	defer unlock()
	c.items[key] = c.newEntry(value, ttl)
}

// GetOrLoad implements Cache.GetOrLoad. load runs outside the lock, so two
// concurrent misses may both load; the last one stored wins.
func (c *SimpleCache[K, V]) GetOrLoad(key K, ttl time.Duration, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Upsert implements Cache.Upsert.
func (c *SimpleCache[K, V]) Upsert(key K, ttl time.Duration, fn func(current V, found bool) V) V {
	unlock := c.lockW()
	defer unlock()
	current, found := c.lookup(key)
	next := fn(current, found)
	c.items[key] = c.newEntry(next, ttl)
	return next
}

// Delete implements Cache.Delete.
func (c *SimpleCache[K, V]) Delete(key K) {
	unlock := c.lockW()
	defer unlock()
	delete(c.items, key)
}

// DeleteWhere implements Cache.DeleteWhere.
func (c *SimpleCache[K, V]) DeleteWhere(pred func(K) bool) int {
	unlock := c.lockW()
	defer unlock()
	removed := 0
	for k := range c.items {
		if pred(k) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *SimpleCache[K, V]) Len() int {
	unlock := c.lockR()
	defer unlock()
	ts := now()
	count := 0
	for _, e := range c.items {
		if !e.expired(ts) {
			count++
		}
	}
	return count
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *SimpleCache[K, V]) PurgeExpired() {
	unlock := c.lockW()
	defer unlock()
	ts := now()
	for k, e := range c.items {
		if e.expired(ts) {
			delete(c.items, k)
		}
	}
}

var _ Cache[any, any] = (*SimpleCache[any, any])(nil)
