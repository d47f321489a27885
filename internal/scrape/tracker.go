// Package scrape tracks knowledge refresh runs. The actual scraping work is
// handled upstream of the FAQ corpus; the tracker only records run metadata
// so the dashboard can report status.
package scrape

import (
	"sync"
	"time"

	"guidebot/internal/models"
)

// Tracker owns the single process-wide scraping state. It is constructed at
// startup and injected where needed rather than living as a package global.
type Tracker struct {
	mu    sync.Mutex
	state models.ScrapingState
	now   func() time.Time
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{
		state: models.ScrapingState{
			Status:  models.ScrapeIdle,
			Sources: []models.SourceSummary{},
		},
		now: time.Now,
	}
}

// Start records a refresh run over the given sources. Runs complete
// synchronously from the tracker's point of view.
func (t *Tracker) Start(sources []models.SourceSummary) models.ScrapingState {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := t.now().UTC().Format(time.RFC3339)
	t.state.Status = models.ScrapeCompleted
	t.state.LastStarted = ts
	t.state.LastCompleted = ts
	t.state.Sources = append([]models.SourceSummary{}, sources...)
	return t.snapshotLocked()
}

// MarkSource records a targeted refresh of one source.
func (t *Tracker) MarkSource(sourceID string) models.ScrapingState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Status = models.ScrapeCompleted
	t.state.LastCompleted = t.now().UTC().Format(time.RFC3339)
	for _, s := range t.state.Sources {
		if s.ID == sourceID {
			return t.snapshotLocked()
		}
	}
	t.state.Sources = append(t.state.Sources, models.SourceSummary{ID: sourceID, Name: sourceID})
	return t.snapshotLocked()
}

// Status returns an independent copy of the current state.
func (t *Tracker) Status() models.ScrapingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() models.ScrapingState {
	out := t.state
	out.Sources = append([]models.SourceSummary{}, t.state.Sources...)
	return out
}
