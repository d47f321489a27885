package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"guidebot/internal/analytics"
	"guidebot/internal/chat"
	"guidebot/internal/models"
	"guidebot/internal/scrape"
	"guidebot/internal/users"
)

// Handler exposes the chat, analytics, user, and scraping endpoints.
type Handler struct {
	orchestrator *chat.Orchestrator
	analytics    *analytics.Aggregator
	users        *users.Registry
	scraping     *scrape.Tracker
	logger       *zap.Logger
}

func NewHandler(orchestrator *chat.Orchestrator, agg *analytics.Aggregator, registry *users.Registry, tracker *scrape.Tracker, logger *zap.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		analytics:    agg,
		users:        registry,
		scraping:     tracker,
		logger:       logger,
	}
}

type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type ChatResponse struct {
	Success bool `json:"success"`
	*chat.ChatTurnResult
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.orchestrator.Handle(r.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			http.Error(w, "Message cannot be empty", http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to process message", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, ChatResponse{Success: true, ChatTurnResult: result})
}

type HistoryResponse struct {
	Success       bool                  `json:"success"`
	History       []models.HistoryEntry `json:"history"`
	TotalMessages int                   `json:"total_messages"`
}

func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		userID = "anonymous"
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	h.writeJSON(w, HistoryResponse{
		Success:       true,
		History:       h.analytics.Recent(userID, limit),
		TotalMessages: h.analytics.TotalFor(userID),
	})
}

type CreateUserResponse struct {
	Success bool               `json:"success"`
	User    models.UserProfile `json:"user"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	registered := h.users.Register(profile)
	h.logger.Debug("Registered user", zap.String("userId", registered.UserID))
	h.writeJSON(w, CreateUserResponse{Success: true, User: registered})
}

type AnalyticsResponse struct {
	Success     bool              `json:"success"`
	Summary     analytics.Summary `json:"summary"`
	LastUpdated string            `json:"last_updated"`
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary := h.analytics.Summarize()
	h.writeJSON(w, AnalyticsResponse{
		Success:     true,
		Summary:     summary,
		LastUpdated: summary.AsOf,
	})
}

type ScrapingStartResponse struct {
	Success   bool                `json:"success"`
	StartedAt string              `json:"started_at"`
	Status    models.ScrapeStatus `json:"status"`
}

func (h *Handler) StartScraping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := h.scraping.Start([]models.SourceSummary{
		{ID: "faq_seed", Name: "Seeded FAQ knowledge base", Items: h.users.Count() + 5},
	})
	h.writeJSON(w, ScrapingStartResponse{
		Success:   true,
		StartedAt: state.LastStarted,
		Status:    state.Status,
	})
}

type ScrapingStatusResponse struct {
	Success bool `json:"success"`
	models.ScrapingState
}

func (h *Handler) GetScrapingStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, ScrapingStatusResponse{Success: true, ScrapingState: h.scraping.Status()})
}

// ScrapeSource acknowledges a targeted refresh for /api/scraping/source/{id}.
func (h *Handler) ScrapeSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sourceID := strings.TrimPrefix(r.URL.Path, "/api/scraping/source/")
	if sourceID == "" || strings.Contains(sourceID, "/") {
		http.Error(w, "Invalid source ID", http.StatusBadRequest)
		return
	}

	state := h.scraping.MarkSource(sourceID)
	h.writeJSON(w, map[string]any{
		"success":      true,
		"source_id":    sourceID,
		"requested_at": state.LastCompleted,
		"status":       state.Status,
	})
}

// GetScrapedData serves placeholder content for /api/scraping/data/{id}.
func (h *Handler) GetScrapedData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sourceID := strings.TrimPrefix(r.URL.Path, "/api/scraping/data/")
	if sourceID == "" || strings.Contains(sourceID, "/") {
		http.Error(w, "Invalid source ID", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]any{
		"success":   true,
		"source_id": sourceID,
		"data": []map[string]string{
			{
				"title":   "Campus Overview",
				"summary": "A multi-campus university with strong placement records and residential facilities.",
				"url":     "https://example.edu/about/",
			},
		},
		"fetched_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// EnhanceKnowledge acknowledges an AI knowledge refresh request.
func (h *Handler) EnhanceKnowledge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]any{
		"success":      true,
		"message":      "Knowledge base already synced with latest FAQ entries.",
		"completed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// AITraining acknowledges custom training payloads.
func (h *Handler) AITraining(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]any{
		"success":      true,
		"message":      "Training request received. FAQ knowledge base is ready.",
		"processed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
