package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a size-bounded cache evicting the least recently used entry.
// Entries older than the TTL are treated as missing; a zero TTL disables
// expiry.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[K]*list.Element
	order    *list.List
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	storedAt time.Time
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL sets how long an entry stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewLRU creates an LRU holding at most capacity entries. A capacity below
// one is raised to one.
func NewLRU[K comparable, V any](capacity int, opts ...Option) *LRU[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      o.ttl,
		now:      o.now,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[K, V])
	if c.expired(e) {
		c.remove(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return e.value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.storedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, storedAt: c.now()})
	for c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
}

// Delete drops key if present.
func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// Purge drops expired entries and returns how many were removed.
func (c *LRU[K, V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if c.expired(elem.Value.(*entry[K, V])) {
			c.remove(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of stored entries, expired ones included until
// they are touched or purged.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU[K, V]) expired(e *entry[K, V]) bool {
	return c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl
}

func (c *LRU[K, V]) remove(elem *list.Element) {
	e := elem.Value.(*entry[K, V])
	delete(c.items, e.key)
	c.order.Remove(elem)
}

var _ Cache[string, int] = (*LRU[string, int])(nil)
