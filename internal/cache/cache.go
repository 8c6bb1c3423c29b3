package cache

import (
	"log/slog"
	"sync"
	"time"
)

// maxPrealloc caps the index and arena size hint so a very large capacity
// does not allocate up front.
const maxPrealloc = 1024

// Config controls cache capacity and expiry.
//
// Capacity must be positive. TTL applies uniformly to every entry and is
// fixed for the lifetime of the cache; a zero or negative TTL makes every
// entry expire as soon as the clock moves past its insertion time.
type Config struct {
	Capacity int
	TTL      time.Duration

	// Clock defaults to the system clock.
	Clock Clock
	// Logger receives debug records for expirations, evictions and clears.
	// A nil Logger discards them.
	Logger *slog.Logger
}

// Cache is a concurrency-safe in-memory key-value cache bounded by entry
// count, with a fixed per-entry TTL and LRU eviction.
//
// A map gives O(1) key lookup and an arena-backed doubly linked list keeps
// recency order. A single mutex guards both as one unit; every method holds
// it for its full duration.
//
// Expiration is lazy. Expired entries are removed when Get observes them or
// when Put sweeps for room at capacity. Until then they still count in Len.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	clock    Clock
	log      *slog.Logger

	index map[K]slot
	lru   recencyList[K, V] // head = most recently used, tail = least recently used
}

// New constructs an empty cache. It fails with ErrInvalidArgument when
// cfg.Capacity is not positive.
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	hint := min(cfg.Capacity, maxPrealloc)
	return &Cache[K, V]{
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		clock:    clock,
		log:      newLogger(cfg.Logger),
		index:    make(map[K]slot, hint),
		lru:      newRecencyList[K, V](hint),
	}, nil
}

// Capacity returns the maximum number of entries the cache holds.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// TTL returns the lifetime applied to every entry.
func (c *Cache[K, V]) TTL() time.Duration { return c.ttl }

// Get returns the value stored for key.
//
// A live hit moves the entry to the most recently used position. A hit on an
// expired entry removes it and reports a miss. A plain miss changes nothing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	s, ok := c.index[key]
	if !ok {
		return zero, false
	}

	e := c.lru.at(s)
	if c.expired(e, c.clock.Now()) {
		c.removeLocked(s)
		c.logOp(opExpire, "key", key)
		return zero, false
	}

	c.lru.moveToFront(s)
	return e.value, true
}

// Put stores value under key and restarts its TTL.
//
// Updating an existing key replaces the value and moves it to the most
// recently used position. Inserting a new key into a full cache first removes
// every expired entry; if the cache is still full, the least recently used
// entry is evicted whether or not it has expired.
//
// Put fails with ErrInvalidArgument, leaving the cache untouched, when key or
// value is nil.
func (c *Cache[K, V]) Put(key K, value V) error {
	if err := validateEntry(key, value); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	expiresAt := now.Add(c.ttl)

	if s, ok := c.index[key]; ok {
		e := c.lru.at(s)
		e.value = value
		e.expiresAt = expiresAt
		c.lru.moveToFront(s)
		return nil
	}

	if len(c.index) >= c.capacity {
		c.sweepExpiredLocked(now)
		if len(c.index) >= c.capacity {
			c.evictLRULocked()
		}
	}

	s := c.lru.alloc(key, value, expiresAt)
	c.lru.pushFront(s)
	c.index[key] = s
	return nil
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.index[key]
	if !ok {
		return false
	}
	c.removeLocked(s)
	return true
}

// Len returns the number of stored entries.
//
// Note: Len includes entries that have expired but have not been discovered
// by Get or a capacity sweep yet.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.index)
	clear(c.index)
	c.lru.reset()
	c.logOp(opClear, "removed", n)
}

// Keys returns keys in MRU -> LRU order, expired entries included.
//
// This is a debug helper: it neither touches recency nor removes anything.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.keys()
}

func (c *Cache[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return now.After(e.expiresAt)
}

func (c *Cache[K, V]) removeLocked(s slot) {
	key := c.lru.remove(s)
	delete(c.index, key)
}

// sweepExpiredLocked walks the whole list from tail to head and removes every
// expired entry. It is O(n) even when nothing has expired.
func (c *Cache[K, V]) sweepExpiredLocked(now time.Time) int {
	scanned, removed := 0, 0
	for s := c.lru.tail; s != nilSlot; {
		e := c.lru.at(s)
		prev := e.prev
		if c.expired(e, now) {
			c.removeLocked(s)
			removed++
		}
		scanned++
		s = prev
	}
	c.logOp(opSweep, "scanned", scanned, "removed", removed)
	return removed
}

func (c *Cache[K, V]) evictLRULocked() {
	s := c.lru.tail
	if s == nilSlot {
		return
	}
	key := c.lru.at(s).key
	c.removeLocked(s)
	c.logOp(opEvict, "key", key)
}
