package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/internal/server/response"
)

// AuthConfig holds API-key protection settings. Only requests whose method
// is listed in ProtectedMethods are checked, so browsing stays public.
type AuthConfig struct {
	Enabled          bool
	APIKey           string
	HeaderName       string
	ProtectedMethods []string
}

// DefaultAuthConfig returns a disabled configuration protecting writes.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Enabled:          false,
		HeaderName:       "X-API-Key",
		ProtectedMethods: []string{http.MethodPost, http.MethodPut, http.MethodDelete},
	}
}

// Auth rejects protected requests that lack the configured API key.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || !slices.Contains(config.ProtectedMethods, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := extractAPIKey(r, config.HeaderName)
			if apiKey == "" || config.APIKey == "" ||
				subtle.ConstantTimeCompare([]byte(apiKey), []byte(config.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", apiKey != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractAPIKey reads the key from the custom header, then from an
// Authorization header with or without a Bearer prefix.
func extractAPIKey(r *http.Request, header string) string {
	if apiKey := r.Header.Get(header); apiKey != "" {
		return apiKey
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
