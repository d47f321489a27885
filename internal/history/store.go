package history

import (
	"sync"

	"guidebot/internal/models"
)

// Store keeps a bounded, per-user log of chat turns in memory. All methods
// are safe for concurrent use; a single mutex serializes every read and
// write so aggregate counts never observe a log mid-eviction.
type Store struct {
	mu         sync.Mutex
	logs       map[string][]models.HistoryEntry
	maxEntries int
}

// NewStore returns an empty store that retains at most maxEntries of the
// newest entries per user.
func NewStore(maxEntries int) *Store {
	if maxEntries < 1 {
		panic("history: maxEntries must be at least 1")
	}
	return &Store{
		logs:       make(map[string][]models.HistoryEntry),
		maxEntries: maxEntries,
	}
}

// MaxEntries reports the per-user retention bound.
func (s *Store) MaxEntries() int { return s.maxEntries }

// Append records one entry for userID, evicting the oldest entries when the
// log would exceed the retention bound.
func (s *Store) Append(userID string, entry models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.logs[userID], entry)
	if len(log) > s.maxEntries {
		// Retain only the most recent entries to keep memory bounded.
		keep := log[len(log)-s.maxEntries:]
		log = append(make([]models.HistoryEntry, 0, s.maxEntries), keep...)
	}
	s.logs[userID] = log
}

// Snapshot returns up to limit of the most recent entries for userID in
// chronological order. The result is an independent copy; later appends do
// not mutate a snapshot already handed out. Unknown users yield an empty
// slice.
func (s *Store) Snapshot(userID string, limit int) []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[userID]
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	out := make([]models.HistoryEntry, len(log))
	copy(out, log)
	return out
}

// EntryCount reports the number of entries recorded for a single user.
func (s *Store) EntryCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs[userID])
}

// TotalEntries reports the number of entries across all users.
func (s *Store) TotalEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// ActiveUserCount reports the number of users with at least one entry.
func (s *Store) ActiveUserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

// Totals returns the total entry count and active user count under one lock
// acquisition, so both numbers reflect the same instant.
func (s *Store) Totals() (entries, users int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked(), len(s.logs)
}

func (s *Store) totalLocked() int {
	total := 0
	for _, log := range s.logs {
		total += len(log)
	}
	return total
}
