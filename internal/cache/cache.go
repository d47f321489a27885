// Package cache provides a small lookup cache for knowledge-base matches.
// Caching is a capability selected at construction time: deployments that
// want it get the LRU implementation, the rest get the no-op, and call
// sites never branch on availability.
package cache

import "guidebot/internal/models"

// Cache stores knowledge-base matches keyed by the raw query string.
type Cache interface {
	Get(query string) (*models.KnowledgeMatch, bool)
	Set(query string, match *models.KnowledgeMatch)
	Stats() Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// Noop satisfies Cache and stores nothing.
type Noop struct{}

// NewNoop returns a cache that never hits.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(string) (*models.KnowledgeMatch, bool) { return nil, false }

func (*Noop) Set(string, *models.KnowledgeMatch) {}

func (*Noop) Stats() Stats { return Stats{} }
