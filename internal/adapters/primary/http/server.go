// Package http exposes the deck generation pipeline over a JSON API and
// a WebSocket chat channel.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
	"github.com/slidesmith/slidesmith/internal/domain/services"
)

// GeneratorFactory resolves a provider name and API key to a text
// generator. A nil generator selects offline deck generation.
type GeneratorFactory func(provider, apiKey string) (ports.TextGenerator, error)

// Services bundles everything a request needs to run the pipeline. An
// Architect is created per request, so concurrent requests write into
// separate work directories.
type Services struct {
	Parser     ports.DeckParser
	Validator  *services.DeckValidator
	Assembler  ports.DeckAssembler
	Templates  ports.TemplateProvider
	Sanitizer  ports.Sanitizer
	Intent     *services.IntentExtractor
	Generators GeneratorFactory

	// DefaultProvider and DefaultAPIKey apply when a request does not
	// name a provider.
	DefaultProvider string
	DefaultAPIKey   string

	// WorkRoot is where per-request artifact directories are created.
	WorkRoot string
}

// Server implements the HTTP and WebSocket transport.
type Server struct {
	server  *http.Server
	cfg     entities.ServerConfig
	svc     Services
	logger  *slog.Logger
	mu      sync.RWMutex
	running bool
}

// NewServer creates an HTTP server around the given services.
func NewServer(cfg entities.ServerConfig, svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, svc: svc, logger: logger}
}

// Router builds the request router with all middleware applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(recoveryMiddleware(s.logger))
	r.Use(loggingMiddleware(s.logger))
	r.Use(securityHeadersMiddleware)
	r.Use(rateLimitMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/templates", s.handleTemplates).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(r)
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeoutDuration(),
		WriteTimeout: s.cfg.WriteTimeoutDuration(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("http server starting",
			slog.String("host", s.cfg.Host), slog.Int("port", s.cfg.Port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	timeout := time.Duration(s.cfg.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
