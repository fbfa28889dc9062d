package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/MikeSquared-Agency/frontdesk/internal/conversation"
	"github.com/MikeSquared-Agency/frontdesk/internal/events"
	"github.com/MikeSquared-Agency/frontdesk/internal/resolver"
)

// Resolver answers one chat message.
type Resolver interface {
	Resolve(ctx context.Context, message string, history []conversation.Turn) (resolver.Result, error)
}

// Publisher announces answered messages. Optional.
type Publisher interface {
	PublishResolved(evt events.Resolved) error
}

type Options struct {
	StaticDir   string
	CORSOrigins []string
	Events      Publisher
	Logger      *slog.Logger
}

type Server struct {
	router   *chi.Mux
	http     *http.Server
	resolver Resolver
	events   Publisher
	logger   *slog.Logger
}

func NewServer(port int, res Resolver, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "."
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
	}

	s := &Server{
		router:   router,
		resolver: res,
		events:   opts.Events,
		logger:   logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())
	router.Post("/api/chat", s.chat)

	static := newStaticHandler(staticDir)
	router.Get("/", static.index)
	router.Get("/*", static.ServeHTTP)

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
