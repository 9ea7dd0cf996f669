// Package handlers provides HTTP request handlers for the StreamMUSE API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/server/cache"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       application.Application
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(app application.Application, cache *cache.Cache, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		app:       app,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}
}
