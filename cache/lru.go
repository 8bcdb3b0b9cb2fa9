// Package cache provides the bounded, key-addressed result cache the async
// engine consults before scheduling compression work.
//
// Capacity is measured in payload bytes, not entry count. Eviction is
// strictly least-recently-used: every Get refreshes the entry's last-access
// time, and Put evicts the stalest entries until the new one fits. All
// operations serialize on one mutex because eviction mutates the shared
// size total every Put depends on.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultCapacity bounds the cache at 64 MiB of payload bytes unless the
// manager configures otherwise.
const DefaultCapacity = 64 * 1024 * 1024

// entry is one cached result. The element's position in the recency list
// encodes the same ordering as LastAccess; the timestamp and access counter
// are kept for diagnostics.
type entry struct {
	key         string
	data        []byte
	lastAccess  time.Time
	accessCount uint64
}

// Cache is a byte-bounded LRU store of compression results.
type Cache struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	entries  map[string]*list.Element
	recency  *list.List // front = most recently used
}

// New creates a cache bounded at capacity payload bytes. A capacity of 0 or
// less falls back to DefaultCapacity.
func New(capacity int64) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		recency:  list.New(),
	}
}

// Put stores data under key, replacing any existing entry and evicting
// least-recently-used entries until the new one fits.
//
// The cache keeps its own copy of data, so later mutation through the
// caller's slice is never visible to readers.
//
// Returns false without storing when data alone exceeds the configured
// capacity: refusing one oversized entry beats emptying the whole cache.
func (c *Cache) Put(key string, data []byte) bool {
	size := int64(len(data))
	if size > c.capacity {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}

	for c.size+size > c.capacity {
		oldest := c.recency.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	e := &entry{
		key:        key,
		data:       stored,
		lastAccess: time.Now(),
	}
	c.entries[key] = c.recency.PushFront(e)
	c.size += size

	return true
}

// Get returns the bytes cached under key, refreshing the entry's recency.
// The returned slice is an independent copy owned by the caller; mutating it
// never affects the stored entry or other readers.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	e := elem.Value.(*entry)
	e.lastAccess = time.Now()
	e.accessCount++
	c.recency.MoveToFront(elem)

	out := make([]byte, len(e.data))
	copy(out, e.data)

	return out, true
}

// Remove drops the entry under key, if present.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.recency.Init()
	c.size = 0
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Size returns the total payload bytes currently cached.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// Capacity returns the configured byte capacity.
func (c *Cache) Capacity() int64 {
	return c.capacity
}

func (c *Cache) removeLocked(elem *list.Element) {
	e := c.recency.Remove(elem).(*entry)
	delete(c.entries, e.key)
	c.size -= int64(len(e.data))
}
