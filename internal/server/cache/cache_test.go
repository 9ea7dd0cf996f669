package cache

import (
	"sync"
	"testing"
	"time"
)

// TestCache_BasicOperations tests Get, Set, Delete and Clear.
func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.Set(Key("audio", "limit=10"), "page")
	val, found := c.Get(Key("audio", "limit=10"))
	if !found || val != "page" {
		t.Errorf("expected cached page, got %v (found=%v)", val, found)
	}

	if _, found := c.Get(Key("audio", "limit=20")); found {
		t.Error("expected a different query to miss")
	}

	c.Delete(Key("audio", "limit=10"))
	if _, found := c.Get(Key("audio", "limit=10")); found {
		t.Error("expected deleted key to miss")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.ItemCount() != 0 {
		t.Errorf("expected empty cache after Clear, got %d items", c.ItemCount())
	}
}

// TestCache_Expiration tests TTL expiry.
func TestCache_Expiration(t *testing.T) {
	c := New(20*time.Millisecond, time.Minute)
	c.Set("k", "v")

	time.Sleep(40 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

// TestCache_Stats tests hit and miss accounting.
func TestCache_Stats(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.ItemCount != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

// TestCache_Concurrent exercises concurrent readers and writers.
func TestCache_Concurrent(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := Key("audio", string(rune('a'+i)))
			c.Set(key, i)
			c.Get(key)
		}()
	}
	wg.Wait()

	if c.ItemCount() != 20 {
		t.Errorf("expected 20 items, got %d", c.ItemCount())
	}
}

// TestKey tests key construction.
func TestKey(t *testing.T) {
	if got := Key("audio", ""); got != "audio?" {
		t.Errorf("unexpected key %q", got)
	}
	if Key("audio", "a=1") == Key("rankings", "a=1") {
		t.Error("endpoints must not share keys")
	}
}
