package kb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidebot/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedOnlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedEntries), n)

	n, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding a populated corpus must be a no-op")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedEntries), count)
}

func TestFindBestMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.Seed(ctx)
	require.NoError(t, err)

	match, err := s.FindBestMatch(ctx, "what are the hostel fees?")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "faq-hostel-fees", match.ID)
	assert.Contains(t, match.Answer, "Hostel fees")
	assert.Greater(t, match.Score, 0.0)
	assert.LessOrEqual(t, match.Score, 1.0)
	assert.Contains(t, match.Tags, "hostel")
}

func TestFindBestMatchNoResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.Seed(ctx)
	require.NoError(t, err)

	match, err := s.FindBestMatch(ctx, "zzzquark nonexistent")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindBestMatchEmptyQuery(t *testing.T) {
	s := newTestStore(t)

	match, err := s.FindBestMatch(context.Background(), "  !?  ")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAddThenFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx, models.KnowledgeMatch{
		ID:       "faq-wifi",
		Question: "How do I connect to the campus wifi?",
		Answer:   "Use your student ID and portal password on the CampusNet network.",
		Category: "campus",
		Tags:     []string{"wifi", "network"},
	})
	require.NoError(t, err)

	match, err := s.FindBestMatch(ctx, "campus wifi password")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "faq-wifi", match.ID)
}

func TestScoreOverlapBounds(t *testing.T) {
	terms := tokenize("hostel fees per year")
	score := scoreOverlap(terms, "What are the hostel fees and room options?", []string{"hostel", "fees"})
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	assert.Zero(t, scoreOverlap(tokenize("unrelated thing"), "hostel fees", nil))
}
