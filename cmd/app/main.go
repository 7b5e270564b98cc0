// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heart-risk-assistant/internal/config"
	"heart-risk-assistant/internal/domain/ports/adapter"
	"heart-risk-assistant/internal/domain/ports/repository"
	aiAdapters "heart-risk-assistant/internal/infra/adapters/ai"
	"heart-risk-assistant/internal/infra/classifier"
	"heart-risk-assistant/internal/infra/logging"
	"heart-risk-assistant/internal/infra/markdown"
	"heart-risk-assistant/internal/infra/memory"
	"heart-risk-assistant/internal/infra/metrics"
	red "heart-risk-assistant/internal/infra/redis"
	"heart-risk-assistant/internal/infra/web"
	"heart-risk-assistant/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Classifier (startup precondition: artifact must load) ----
	pipeline, err := classifier.Load(cfg.Model.Path, logger)
	if err != nil {
		log.Fatalf("classifier: %v", err)
	}

	// ---- Session store ----
	var store repository.SessionStore
	switch cfg.Session.Store {
	case "redis":
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		store = red.NewSessionStore(redisClient, cfg.Session.TTL)
		logger.Info().Str("store", "redis").Msg("session store ready")
	default:
		store = memory.NewSessionStore()
		logger.Warn().Msg("using in-memory session store; sessions are lost on restart")
	}

	// ---- Narrative backend (Gemini -> OpenAI -> deterministic noop) ----
	var backend adapter.NarrativeBackend
	if cfg.AI.GeminiKey != "" {
		backend, err = aiAdapters.NewGeminiBackend(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel)
		if err != nil {
			log.Fatalf("gemini backend: %v", err)
		}
		logger.Info().Str("provider", "gemini").Str("model", cfg.AI.DefaultModel).Msg("narrative backend ready")
	} else if cfg.AI.OpenAIKey != "" {
		backend, err = aiAdapters.NewOpenAIBackend(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			log.Fatalf("openai backend: %v", err)
		}
		logger.Info().Str("provider", "openai").Str("model", cfg.AI.DefaultModel).Msg("narrative backend ready")
	} else {
		backend = aiAdapters.NewNoopBackend()
		logger.Warn().Msg("no narrative provider configured; reports and chat use deterministic fallback text")
	}
	backend = aiAdapters.NewLimitedBackend(backend, cfg.AI.ConcurrentLimit, cfg.AI.RequestTimeout)

	// ---- Use cases ----
	narrativeUC := usecase.NewNarrativeUseCase(backend, logger)
	assessUC := usecase.NewAssessmentUseCase(store, pipeline, narrativeUC, logger)
	chatUC := usecase.NewChatUseCase(store, narrativeUC, logger)

	// ---- HTTP server ----
	srv := web.NewServer(assessUC, chatUC, markdown.NewSanitizer(), cfg.Session.CookieName, cfg.Session.TTL, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	cancel()
}
