package cache

import (
	"testing"
	"time"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be cached")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("Get(c) = %d, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUOverwrite(t *testing.T) {
	c := NewLRU[string, string](2)
	c.Set("k", "old")
	c.Set("k", "new")
	if v, _ := c.Get("k"); v != "new" {
		t.Fatalf("Get(k) = %q, want new", v)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestLRUTTL(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	c := NewLRU[string, int](4, WithTTL(time.Minute), WithClock(func() time.Time { return now }))

	c.Set("a", 1)
	c.Set("b", 2)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired too early")
	}

	now = now.Add(30 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to expire")
	}
	if removed := c.Purge(); removed != 1 {
		t.Fatalf("Purge() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestLRUDeleteAndMinimumCapacity(t *testing.T) {
	c := NewLRU[int, int](0)
	c.Set(1, 1)
	c.Set(2, 2)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	c.Delete(2)
	if _, ok := c.Get(2); ok {
		t.Fatal("expected 2 to be deleted")
	}
}
