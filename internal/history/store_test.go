package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidebot/internal/models"
)

func entry(id string) models.HistoryEntry {
	return models.HistoryEntry{ID: id, Kind: models.EntryUser, Text: "msg " + id}
}

func TestAppendBounded(t *testing.T) {
	const max = 5
	s := NewStore(max)

	for i := 0; i < max*3; i++ {
		s.Append("u1", entry(fmt.Sprintf("%d", i)))
	}

	got := s.Snapshot("u1", max*3)
	require.Len(t, got, max)

	// Only the newest entries survive, in chronological order.
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("%d", max*2+i), e.ID)
	}
	assert.Equal(t, max, s.EntryCount("u1"))
}

func TestSnapshotLimit(t *testing.T) {
	s := NewStore(10)
	for i := 0; i < 6; i++ {
		s.Append("u1", entry(fmt.Sprintf("%d", i)))
	}

	got := s.Snapshot("u1", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "5", got[1].ID)
}

func TestSnapshotUnknownUser(t *testing.T) {
	s := NewStore(10)
	assert.Empty(t, s.Snapshot("nobody", 50))
	assert.Equal(t, 0, s.ActiveUserCount())
}

func TestUserIsolation(t *testing.T) {
	s := NewStore(10)
	s.Append("a", entry("a1"))
	s.Append("a", entry("a2"))
	s.Append("b", entry("b1"))

	assert.Len(t, s.Snapshot("a", 10), 2)
	assert.Len(t, s.Snapshot("b", 10), 1)
	assert.Equal(t, 3, s.TotalEntries())
	assert.Equal(t, 2, s.ActiveUserCount())
}

func TestSnapshotImmutable(t *testing.T) {
	s := NewStore(3)
	s.Append("u1", entry("0"))
	s.Append("u1", entry("1"))

	snap := s.Snapshot("u1", 10)
	require.Len(t, snap, 2)

	// Push the log past its bound; the earlier snapshot must be unaffected.
	s.Append("u1", entry("2"))
	s.Append("u1", entry("3"))

	assert.Equal(t, "0", snap[0].ID)
	assert.Equal(t, "1", snap[1].ID)
}

func TestTotalsConsistent(t *testing.T) {
	s := NewStore(100)
	s.Append("a", entry("1"))
	s.Append("b", entry("2"))
	s.Append("b", entry("3"))

	entries, users := s.Totals()
	assert.Equal(t, 3, entries)
	assert.Equal(t, 2, users)
}

func TestConcurrentAppends(t *testing.T) {
	const workers = 64
	s := NewStore(1000)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append("shared", entry(fmt.Sprintf("w%d", i)))
		}(i)
	}
	wg.Wait()

	got := s.Snapshot("shared", workers)
	require.Len(t, got, workers)

	// No entry lost or duplicated.
	seen := make(map[string]bool, workers)
	for _, e := range got {
		assert.False(t, seen[e.ID], "duplicate entry %s", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, workers)
}

func TestConcurrentAppendsPastBound(t *testing.T) {
	const workers = 32
	const max = 10
	s := NewStore(max)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append("shared", entry(fmt.Sprintf("w%d", i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, max, s.EntryCount("shared"))
}
