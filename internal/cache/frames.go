// Package cache keeps recently encoded images keyed by the request that
// produced them.
//
// Frames is bounded by the total number of bytes held, not by entry count,
// since a full-size relief can be several hundred times larger than a
// preview thumbnail.
package cache

import "sync"

// Frames is a thread-safe LRU cache of encoded images.
//
// Frames must not be copied after creation (has mutex).
type Frames struct {
	mu      sync.Mutex
	entries map[string]*lruNode
	order   lruList
	size    int64
	limit   int64

	hits      uint64
	misses    uint64
	evictions uint64
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Bytes is the total size of the cached values.
	Bytes int64
	// Limit is the byte budget.
	Limit int64
	// Hits is the number of successful lookups.
	Hits uint64
	// Misses is the number of failed lookups.
	Misses uint64
	// Evictions is the number of entries dropped to stay within Limit.
	Evictions uint64
}

// New creates a cache holding at most limit bytes. A limit of 0 or less
// disables caching: Put discards everything.
func New(limit int64) *Frames {
	return &Frames{
		entries: make(map[string]*lruNode),
		limit:   limit,
	}
}

// Get returns the value stored under key and marks it recently used.
// The returned slice must not be modified.
func (c *Frames) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(node)
	return node.value, true
}

// Put stores value under key, evicting the least recently used entries until
// the cache fits its budget. Values larger than the whole budget are not
// stored.
func (c *Frames) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(value))
	if n > c.limit {
		return
	}
	if old, ok := c.entries[key]; ok {
		c.size -= int64(len(old.value))
		c.order.Remove(old)
		delete(c.entries, key)
	}
	for c.size+n > c.limit {
		oldest := c.order.Oldest()
		c.order.Remove(oldest)
		delete(c.entries, oldest.key)
		c.size -= int64(len(oldest.value))
		c.evictions++
	}
	c.entries[key] = c.order.PushFront(key, value)
	c.size += n
}

// Len returns the number of entries.
func (c *Frames) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries. Statistics are kept.
func (c *Frames) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*lruNode)
	c.order = lruList{}
	c.size = 0
}

// Stats returns cache statistics.
func (c *Frames) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Bytes:     c.size,
		Limit:     c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
