package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func freezeClock(t *testing.T) *time.Time {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })
	return &base
}

func TestSimpleCache_SetGet_NoTTL(t *testing.T) {
	c := NewSimpleCache[string, int](Options{})
	c.Set("a", 1, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with value 1, got ok=%v v=%v", ok, v)
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
}

func TestSimpleCache_DefaultTTL_Expiry(t *testing.T) {
	clock := freezeClock(t)
	c := NewSimpleCache[string, string](Options{ConcurrencySafe: true, DefaultTTL: time.Second})

	c.Set("k", "v", 0)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit before expiry")
	}

	*clock = clock.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	c.PurgeExpired()
	if c.Len() != 0 {
		t.Fatalf("expected Len=0 after purge, got %d", c.Len())
	}
}

func TestSimpleCache_SlidingExpiry(t *testing.T) {
	clock := freezeClock(t)
	c := NewSimpleCache[string, int](Options{ConcurrencySafe: true, Sliding: true})
	c.Set("s", 7, 10*time.Second)

	for i := 0; i < 3; i++ {
		*clock = clock.Add(8 * time.Second)
		if _, ok := c.Get("s"); !ok {
			t.Fatalf("expected sliding hit on round %d", i)
		}
	}
	*clock = clock.Add(11 * time.Second)
	if _, ok := c.Get("s"); ok {
		t.Fatalf("expected miss once idle past the ttl")
	}
}

func TestSimpleCache_GetOrLoad(t *testing.T) {
	c := NewSimpleCache[int, string](Options{ConcurrencySafe: true})
	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(1, 0, load)
		if err != nil || v != "loaded" {
			t.Fatalf("unexpected result v=%q err=%v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrLoad(2, 0, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, ok := c.Get(2); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestSimpleCache_UpsertAndDeleteWhere(t *testing.T) {
	c := NewSimpleCache[string, int](Options{ConcurrencySafe: true})
	inc := func(cur int, found bool) int {
		if !found {
			return 1
		}
		return cur + 1
	}
	c.Upsert("a:1", 0, inc)
	c.Upsert("a:1", 0, inc)
	c.Upsert("b:1", 0, inc)
	if v, _ := c.Get("a:1"); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}

	removed := c.DeleteWhere(func(k string) bool { return k[0] == 'a' })
	if removed != 1 || c.Len() != 1 {
		t.Fatalf("expected one removal and one survivor, got removed=%d len=%d", removed, c.Len())
	}
	c.Delete("b:1")
	if c.Len() != 0 {
		t.Fatalf("expected empty cache")
	}
}

func TestSimpleCache_ConcurrentUpsert(t *testing.T) {
	c := NewSimpleCache[int, int](Options{ConcurrencySafe: true})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				c.Upsert(0, 0, func(cur int, _ bool) int { return cur + 1 })
				_, _ = c.Get(0)
			}
		}()
	}
	wg.Wait()
	if v, _ := c.Get(0); v != 5000 {
		t.Fatalf("expected 5000 increments, got %d", v)
	}
}
