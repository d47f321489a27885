package cache

import (
	"sync"

	"guidebot/internal/models"
)

// LRU is a bounded, mutex-guarded match cache with least-recently-used
// eviction.
type LRU struct {
	mu      sync.Mutex
	entries map[string]*models.KnowledgeMatch
	order   []string // LRU order tracking, oldest first
	maxSize int
	stats   Stats
}

// NewLRU returns an empty cache holding at most maxSize entries.
func NewLRU(maxSize int) *LRU {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU{
		entries: make(map[string]*models.KnowledgeMatch),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns the cached match for query. A copy is returned so callers
// cannot mutate the cached value.
func (c *LRU) Get(query string) (*models.KnowledgeMatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, ok := c.entries[query]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	c.touch(query)
	out := *match
	return &out, true
}

// Set stores a match for query, evicting the least recently used entry
// when the cache is full. Nil matches are not cached.
func (c *LRU) Set(query string, match *models.KnowledgeMatch) {
	if match == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *match
	if _, exists := c.entries[query]; exists {
		c.entries[query] = &stored
		c.touch(query)
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.stats.Evictions++
	}
	c.entries[query] = &stored
	c.order = append(c.order, query)
}

// Stats returns a snapshot of the cache counters.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}

// touch moves query to the most-recently-used position. Caller holds c.mu.
func (c *LRU) touch(query string) {
	for i, q := range c.order {
		if q == query {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, query)
			return
		}
	}
}
