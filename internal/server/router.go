package server

import (
	"net/http"
	"strings"

	"github.com/StreamMUSE/streammuse/internal/metrics"
	"github.com/StreamMUSE/streammuse/internal/server/handlers"
	"github.com/StreamMUSE/streammuse/internal/server/middleware"
	"github.com/StreamMUSE/streammuse/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.app, s.cache, s.logger)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Audio endpoints: listing and vote recording share a path
	mux.HandleFunc(prefix+"/audio", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.HandleListAudio(w, r)
		case http.MethodPost:
			h.HandleRecordVote(w, r)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	mux.HandleFunc(prefix+"/audio/", func(w http.ResponseWriter, r *http.Request) {
		groupID := extractPathParam(r.URL.Path, prefix+"/audio/")
		if groupID == "" {
			response.NotFound(w, "Group ID required")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleGetGroup(w, r, groupID)
	})

	mux.HandleFunc(prefix+"/rankings", getOnly(h.HandleRankings))
	mux.HandleFunc(prefix+"/midi", getOnly(h.HandleMIDI))
	mux.HandleFunc(prefix+"/stats", getOnly(h.HandleStats))

	// Metrics endpoint (optional)
	if s.config.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	// Instance files, so midi_url values resolve against this server
	if s.config.StaticEnabled {
		urlPrefix := strings.TrimSuffix(s.app.URLPrefix(), "/")
		files := http.FileServer(http.Dir(s.app.ContentRoot()))
		mux.Handle(urlPrefix+"/", http.StripPrefix(urlPrefix, files))
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	// Authentication (if enabled)
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		authConfig.HeaderName = cfg.AuthHeader
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// getOnly rejects every method but GET and HEAD.
func getOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}

// extractPathParam extracts the first path segment after prefix.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	first, _, _ := strings.Cut(trimmed, "/")
	return first
}
