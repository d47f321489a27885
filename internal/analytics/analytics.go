package analytics

import (
	"time"

	"guidebot/internal/history"
	"guidebot/internal/models"
	"guidebot/internal/users"
)

// Summary is the engagement snapshot served to dashboard widgets.
type Summary struct {
	ActiveUsers     int    `json:"active_users"`
	RegisteredUsers int    `json:"registered_users"`
	TotalMessages   int    `json:"messages"`
	AsOf            string `json:"as_of"`
}

// Aggregator computes read-only usage summaries over the history store and
// the user registry.
type Aggregator struct {
	store    *history.Store
	registry *users.Registry
}

// NewAggregator wires an aggregator over its two sources.
func NewAggregator(store *history.Store, registry *users.Registry) *Aggregator {
	return &Aggregator{store: store, registry: registry}
}

// Summarize reports active users and message totals. Both history counts
// come from a single locked read so they reflect one consistent instant.
func (a *Aggregator) Summarize() Summary {
	entries, active := a.store.Totals()
	return Summary{
		ActiveUsers:     active,
		RegisteredUsers: a.registry.Count(),
		TotalMessages:   entries,
		AsOf:            time.Now().UTC().Format(time.RFC3339),
	}
}

// Recent returns up to limit most recent history entries for userID, with
// limit clamped to the store's retention bound.
func (a *Aggregator) Recent(userID string, limit int) []models.HistoryEntry {
	if limit < 1 || limit > a.store.MaxEntries() {
		limit = a.store.MaxEntries()
	}
	return a.store.Snapshot(userID, limit)
}

// TotalFor reports the full entry count for a user, independent of any
// display limit.
func (a *Aggregator) TotalFor(userID string) int {
	return a.store.EntryCount(userID)
}
