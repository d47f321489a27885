package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"guidebot/internal/analytics"
	"guidebot/internal/api"
	"guidebot/internal/cache"
	"guidebot/internal/chat"
	"guidebot/internal/config"
	"guidebot/internal/history"
	"guidebot/internal/kb"
	"guidebot/internal/llm"
	"guidebot/internal/scrape"
	"guidebot/internal/users"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize knowledge base and seed it on first run
	knowledge, err := kb.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to initialize knowledge base",
			zap.Error(err),
			zap.String("dbPath", cfg.DBPath))
	}
	defer knowledge.Close()

	seeded, err := knowledge.Seed(context.Background())
	if err != nil {
		logger.Fatal("failed to seed knowledge base", zap.Error(err))
	}
	if seeded > 0 {
		logger.Info("seeded knowledge base", zap.Int("entries", seeded))
	}

	// Initialize generation service
	generator, err := llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		logger.Fatal("failed to initialize generation service", zap.Error(err))
	}

	var matches cache.Cache = cache.NewNoop()
	if cfg.CacheEnabled {
		matches = cache.NewLRU(cfg.CacheSize)
	}

	store := history.NewStore(cfg.MaxHistory)
	registry := users.NewRegistry()
	tracker := scrape.NewTracker()

	orchestrator := chat.New(store, knowledge, generator, matches, logger, chat.Options{
		FallbackResponse: cfg.FallbackResponse,
		AnonymousUserID:  cfg.AnonymousUserID,
	})
	aggregator := analytics.NewAggregator(store, registry)

	handler := api.NewHandler(orchestrator, aggregator, registry, tracker, logger)

	// Set up routes
	http.HandleFunc("/api/chat", handler.HandleChat)
	http.HandleFunc("/api/chat/history", handler.GetChatHistory)
	http.HandleFunc("/api/users", handler.CreateUser)
	http.HandleFunc("/api/analytics", handler.GetAnalytics)
	http.HandleFunc("/api/scraping/start", handler.StartScraping)
	http.HandleFunc("/api/scraping/status", handler.GetScrapingStatus)
	http.HandleFunc("/api/scraping/source/", handler.ScrapeSource)
	http.HandleFunc("/api/scraping/data/", handler.GetScrapedData)
	http.HandleFunc("/api/ai/enhance", handler.EnhanceKnowledge)
	http.HandleFunc("/api/ai-training", handler.AITraining)
	http.HandleFunc("/health", handler.Health)

	logger.Info("Starting server", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
