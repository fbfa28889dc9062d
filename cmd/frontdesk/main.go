package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/frontdesk/internal/api"
	"github.com/MikeSquared-Agency/frontdesk/internal/catalog"
	"github.com/MikeSquared-Agency/frontdesk/internal/config"
	"github.com/MikeSquared-Agency/frontdesk/internal/events"
	"github.com/MikeSquared-Agency/frontdesk/internal/gemini"
	"github.com/MikeSquared-Agency/frontdesk/internal/metrics"
	"github.com/MikeSquared-Agency/frontdesk/internal/resolver"
	"github.com/MikeSquared-Agency/frontdesk/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("frontdesk starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.Init()

	// Static tables: loaded once, never fatal.
	kb, depts := loadCatalog(ctx, cfg)
	metrics.SetCatalogSize("faq", kb.Len())
	metrics.SetCatalogSize("departments", depts.Len())

	// Gemini client
	if cfg.GeminiAPIURL == "" || cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_URL or GEMINI_API_KEY not set, model fallback will answer with errors")
	}
	llm := gemini.NewClient(cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.GeminiTimeout)

	res := resolver.New(kb, depts, llm, slog.Default())

	// NATS (optional)
	opts := api.Options{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      slog.Default(),
	}
	if cfg.NatsURL != "" {
		ev, err := events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		opts.Events = ev
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, res, opts)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	slog.Info("frontdesk ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}
	slog.Info("frontdesk stopped")
}

// loadCatalog reads the tables from Postgres when DATABASE_URL is set and
// from files otherwise. An unreachable database leaves both tables empty.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.KnowledgeBase, *catalog.Departments) {
	if cfg.DatabaseURL == "" {
		src := catalog.FileSource{KnowledgeBasePath: cfg.KnowledgeBasePath, DepartmentsPath: cfg.DepartmentsPath}
		return catalog.Load(ctx, src, slog.Default())
	}

	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("catalog database unavailable, using empty tables", "error", err)
		return catalog.NewKnowledgeBase(nil), catalog.NewDepartments(nil)
	}
	defer db.Close()
	return catalog.Load(ctx, db, slog.Default())
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
