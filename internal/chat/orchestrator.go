package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guidebot/internal/cache"
	"guidebot/internal/history"
	"guidebot/internal/models"
)

// ErrEmptyMessage is returned when a message is empty after trimming.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Lookup finds the best knowledge-base match for a query. A (nil, nil)
// return means no match, which is an ordinary outcome.
type Lookup interface {
	FindBestMatch(ctx context.Context, query string) (*models.KnowledgeMatch, error)
}

// Generator produces a generative completion for a query. Errors are
// expected operational outcomes (timeouts, upstream failures), not bugs.
type Generator interface {
	Generate(ctx context.Context, query string) (*models.GenerationResult, error)
}

// Options tunes orchestrator behaviour; zero values fall back to defaults.
type Options struct {
	FallbackResponse string
	AnonymousUserID  string
}

// Orchestrator sequences one chat turn end to end: record the user turn,
// consult the knowledge base and the generation backend, reconcile, record
// the assistant turn, and compose the outgoing result.
type Orchestrator struct {
	store     *history.Store
	kb        Lookup
	generator Generator
	matches   cache.Cache
	logger    *zap.Logger

	fallback  string
	anonymous string
}

// ChatTurnResult is the composed outcome of one successful turn.
type ChatTurnResult struct {
	Response   string                   `json:"response"`
	Message    string                   `json:"message"`
	UserID     string                   `json:"user_id"`
	Timestamp  float64                  `json:"timestamp"`
	Source     *models.ResponseMetadata `json:"source,omitempty"`
	Category   string                   `json:"category,omitempty"`
	ModelUsed  string                   `json:"model_used,omitempty"`
	TokensUsed int                      `json:"tokens_used,omitempty"`
}

// New wires an orchestrator. generator may be nil when no generation
// backend is configured; matches may be cache.NewNoop() to disable caching.
func New(store *history.Store, kb Lookup, generator Generator, matches cache.Cache, logger *zap.Logger, opts Options) *Orchestrator {
	if opts.FallbackResponse == "" {
		opts.FallbackResponse = "I'm not sure about that yet."
	}
	if opts.AnonymousUserID == "" {
		opts.AnonymousUserID = "anonymous"
	}
	if matches == nil {
		matches = cache.NewNoop()
	}
	return &Orchestrator{
		store:     store,
		kb:        kb,
		generator: generator,
		matches:   matches,
		logger:    logger,
		fallback:  opts.FallbackResponse,
		anonymous: opts.AnonymousUserID,
	}
}

// Handle processes one user message. It returns ErrEmptyMessage for a
// blank message; any other outcome produces a response, worst case the
// configured fallback text with no metadata.
func (o *Orchestrator) Handle(ctx context.Context, userID, rawText string) (*ChatTurnResult, error) {
	message := strings.TrimSpace(rawText)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = o.anonymous
	}

	o.store.Append(userID, models.HistoryEntry{
		ID:        uuid.New().String(),
		Kind:      models.EntryUser,
		Text:      message,
		Timestamp: unixSeconds(),
	})

	// Both collaborator calls happen outside any store lock; either may be
	// slow or fail without blocking other users' appends.
	match := o.lookup(ctx, userID, message)
	gen := o.generate(ctx, userID, message)

	text, meta, extras := Reconcile(match, gen, o.fallback)

	ts := unixSeconds()
	o.store.Append(userID, models.HistoryEntry{
		ID:        uuid.New().String(),
		Kind:      models.EntryAssistant,
		Text:      text,
		Timestamp: ts,
		Metadata:  meta,
	})

	return &ChatTurnResult{
		Response:   text,
		Message:    message,
		UserID:     userID,
		Timestamp:  ts,
		Source:     meta,
		Category:   extras.Category,
		ModelUsed:  extras.ModelUsed,
		TokensUsed: extras.TokensUsed,
	}, nil
}

// lookup consults the match cache, then the knowledge base. Lookup failures
// degrade to "no match" so a turn never fails outright; the fallback text
// still covers the no-signal case.
func (o *Orchestrator) lookup(ctx context.Context, userID, message string) *models.KnowledgeMatch {
	if match, ok := o.matches.Get(message); ok {
		return match
	}
	match, err := o.kb.FindBestMatch(ctx, message)
	if err != nil {
		o.logger.Warn("knowledge base lookup failed",
			zap.Error(err),
			zap.String("userId", userID))
		return nil
	}
	if match != nil {
		o.matches.Set(message, match)
	}
	return match
}

// generate invokes the generation backend, treating any failure as an
// absent result. The knowledge base (or the fallback text) still answers.
func (o *Orchestrator) generate(ctx context.Context, userID, message string) *models.GenerationResult {
	if o.generator == nil {
		return nil
	}
	gen, err := o.generator.Generate(ctx, message)
	if err != nil {
		o.logger.Warn("generation failed, continuing without it",
			zap.Error(err),
			zap.String("userId", userID))
		return nil
	}
	return gen
}

func unixSeconds() float64 {
	return float64(time.Now().UnixMicro()) / 1e6
}
