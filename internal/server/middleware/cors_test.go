package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
	}{
		{"allow all", CORSConfig{AllowAll: true}, "https://example.com", "*"},
		{"no origins configured", CORSConfig{}, "https://example.com", "*"},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.test", "https://b.test"}}, "https://b.test", "https://b.test"},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.test"}}, "https://evil.test", ""},
		{"wildcard entry", CORSConfig{AllowedOrigins: []string{"*"}}, "https://any.test", "https://any.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/audio", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.config)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "ok", rec.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/audio", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called, "preflight must not reach the handler")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("https://a.test", []string{"https://a.test"}))
	assert.True(t, isOriginAllowed("https://a.test", []string{"*"}))
	assert.False(t, isOriginAllowed("https://a.test", []string{"https://b.test"}))
	assert.False(t, isOriginAllowed("https://a.test", nil))
}
