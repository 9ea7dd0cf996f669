package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/StreamMUSE/streammuse/internal/server/response"
)

// HandleHealth handles GET /api/health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "streammuse-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/ready.
// @Summary Readiness check
// @Description Loads the catalog if needed and reports whether it is available
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response
// @Router /api/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	cat := h.app.Catalog()
	groups := cat.Load(r.Context())
	if !cat.Loaded() {
		h.logger.Warn().Str("index", h.app.IndexPath()).Msg("Readiness check failed: catalog not loaded")
		response.ServiceUnavailable(w, "Catalog not available")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"catalog": map[string]any{
			"groups": len(groups),
		},
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}

// HandleStats handles GET /api/stats.
// @Summary Server statistics
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	cat := h.app.Catalog()
	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"catalog": map[string]any{
			"loaded": cat.Loaded(),
			"groups": cat.Len(),
		},
		"cache": h.cache.GetStats(),
	})
}
