package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/server/cache"
	"github.com/StreamMUSE/streammuse/internal/server/middleware"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app         application.Application
	cache       *cache.Cache
	rateLimiter *middleware.RateLimiter
	logger      *zerolog.Logger
	config      Config
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	startTime   time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if app.Catalog() == nil {
		return nil, errors.NewConfigError("server", "no catalog configured", nil)
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return nil, errors.NewConfigError("server", "authentication enabled without an API key", nil)
	}

	if cfg.StaticEnabled && strings.TrimSuffix(app.URLPrefix(), "/") == cfg.PathPrefix+"/audio" {
		return nil, errors.NewConfigError("server", "URL prefix collides with the audio API path", nil)
	}
	if cfg.StaticEnabled && app.URLPrefix() != "" && !strings.HasPrefix(app.URLPrefix(), "/") {
		return nil, errors.NewConfigError("server", "static file serving needs a path URL prefix, not an absolute URL", nil)
	}

	// Set defaults
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultConfig().AuthHeader
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:       app,
		cache:     cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.Burst, logger)
	}

	logger.Debug().
		Str("prefix", cfg.PathPrefix).
		Int("rate_limit", cfg.RateLimit).
		Bool("auth", cfg.AuthEnabled).
		Msg("Server instance created")
	return s, nil
}

// Start starts background services.
func (s *Server) Start() {
	if s.rateLimiter != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.rateLimiter.Run(s.ctx)
		}()
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services, waiting at most until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
