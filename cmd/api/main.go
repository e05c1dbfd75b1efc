// Package main is the entry point for the intake API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/grupokossodo/intake-agent/internal/agent"
	"github.com/grupokossodo/intake-agent/internal/config"
	"github.com/grupokossodo/intake-agent/internal/events"
	"github.com/grupokossodo/intake-agent/internal/handler"
	"github.com/grupokossodo/intake-agent/internal/llm"
	"github.com/grupokossodo/intake-agent/internal/middleware"
	"github.com/grupokossodo/intake-agent/internal/store"
	"github.com/grupokossodo/intake-agent/internal/tool"
	"github.com/grupokossodo/intake-agent/pkg/logger"
	"github.com/grupokossodo/intake-agent/pkg/tracing"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting intake API server")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "intake-agent", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	st, err := store.Open(cfg.DatabasePath, cfg.IdleTimeout)
	if err != nil {
		log.Error("failed to open store", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Intake events are optional: without NATS the agent runs standalone.
	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		natsPub, err := events.ConnectNATS(ctx, cfg.NATSURL, cfg.NATSToken, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		publisher = natsPub
	}
	defer publisher.Close()

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		os.Exit(1)
	}
	log.Info("LLM gateway ready", zap.String("provider", llmClient.Name()))

	registry := tool.NewRegistry(st)
	intakeAgent := agent.New(st, llmClient, registry, publisher, log, cfg.MaxToolLoop)

	healthHandler := handler.NewHealthHandler(st)
	chatHandler := handler.NewChatHandler(intakeAgent, log, 5000)
	conversationHandler := handler.NewConversationHandler(st, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public chat surface, rate limited by client IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
			r.Post("/chat", chatHandler.Chat)
		})

		// Admin read surface for advisor tooling.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RequireScope("intake:read"))

			r.Route("/conversations/{sessionID}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Get("/contact", conversationHandler.GetContact)
				r.Get("/inquiry", conversationHandler.GetInquiry)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model)
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
