// Package cache implements the resolver's TTL-aware answer cache (spec
// Section 4.5): a single ResourceRecord per Question, reclaimed lazily
// when a stale entry is next read. There is deliberately no size bound
// and no LRU — spec Non-goals exclude eviction by anything other than
// TTL expiry.
package cache

import (
	"sync"

	"github.com/jroosing/resolverd/internal/clock"
	"github.com/jroosing/resolverd/internal/dns"
)

// Cache maps a Question to the most recently cached ResourceRecord for
// it. The mutex exists so an observability goroutine can safely read
// Snapshot() concurrently with the resolver loop's own (single,
// sequential) reads and writes — it is not a concurrency control for
// the DNS request path itself, which never has more than one request
// in flight (spec Section 5).
type Cache struct {
	clock clock.Clock

	mu      sync.Mutex
	entries map[dns.QuestionKey]dns.ResourceRecord

	hits   uint64
	misses uint64
}

// New creates an empty Cache that reads the current time from c.
func New(c clock.Clock) *Cache {
	return &Cache{
		clock:   c,
		entries: make(map[dns.QuestionKey]dns.ResourceRecord),
	}
}

// HasFresh reports whether a fresh entry exists for q. A stale entry, if
// found, is removed as a side effect before returning false (spec
// Section 4.5).
func (c *Cache) HasFresh(q dns.Question) bool {
	key := q.Key()
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	rr, ok := c.entries[key]
	if !ok {
		c.misses++
		return false
	}
	if !rr.Fresh(now) {
		delete(c.entries, key)
		c.misses++
		return false
	}
	c.hits++
	return true
}

// Get returns the stored record for q, if any, without checking
// freshness — callers are expected to gate on HasFresh first (spec
// Section 4.5).
func (c *Cache) Get(q dns.Question) (dns.ResourceRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rr, ok := c.entries[q.Key()]
	return rr, ok
}

// Put replaces any existing entry for q with r (spec Section 4.5,
// last-write-wins).
func (c *Cache) Put(q dns.Question, r dns.ResourceRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[q.Key()] = r
}

// Stats is a point-in-time snapshot of cache hit/miss counters, read by
// the observability API (C10).
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Snapshot returns the current cache statistics.
func (c *Cache) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
