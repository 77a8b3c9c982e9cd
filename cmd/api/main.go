package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rojak/internal/config"
	"rojak/internal/handlers"
	"rojak/internal/http"
	"rojak/internal/service"
	"rojak/internal/session"
	"rojak/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := startup(ctx, cfg)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Shutdown completed with errors", "error", err)
		}
	}()

	translationService := service.NewTranslationService(a.generator, a.store, a.publisher, service.TranslationOptions{
		Mode:           cfg.DecodingMode,
		SlangExpansion: cfg.SlangExpansion,
	})
	historyService := service.NewHistoryService(a.store)
	accountService := service.NewAccountService(a.identity, a.store)

	aboutHTML, err := web.RenderMarkdownPage(web.AboutMarkdown, "About")
	if err != nil {
		log.Fatalf("Failed to render About page: %v", err)
	}

	sessions := session.NewManager(cfg.SessionIdleTTL)
	go sessions.RunSweeper(ctx, time.Minute)

	// Create router with dependencies
	deps := &http.Deps{
		TranslationService: translationService,
		HistoryService:     historyService,
		AccountService:     accountService,
		Sessions:           sessions,
		HealthChecks: map[string]handlers.Pinger{
			"generator": a.generator,
			"store":     a.store,
		},
		IndexHTML: web.IndexHTML,
		AboutHTML: aboutHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr, "decoding_mode", cfg.DecodingMode, "firebase", cfg.UseFirebase())
	slog.Debug("Generator configuration", "url", cfg.GeneratorURL, "model", cfg.GeneratorModel, "timeout", cfg.GenerationTimeout)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		slog.Error("API server failed", "error", err)
		return
	}
	slog.Info("API server stopped")
}
