// Package app provides the application context and dependency management
// for the streammuse CLI. It centralizes configuration, logging and the
// process-wide catalog store.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/catalogs/builder"
	"github.com/StreamMUSE/streammuse/internal/catalogs/store"
	"github.com/StreamMUSE/streammuse/internal/votes"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// App represents the streammuse application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Catalog store (lazy-initialized, singleton)
	mu    sync.RWMutex
	store *store.Store
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ContentRoot returns the generated MIDI tree location.
func (a *App) ContentRoot() string {
	return a.config.ContentRoot
}

// IndexPath returns the catalog index location.
func (a *App) IndexPath() string {
	return a.config.IndexPath
}

// URLPrefix returns the prefix of instance URLs.
func (a *App) URLPrefix() string {
	return a.config.URLPrefix
}

// Catalog returns the catalog store, creating it lazily if needed. Every
// caller shares the same store, so the index is read at most once per
// successful load.
func (a *App) Catalog() application.Catalog {
	a.mu.RLock()
	if a.store != nil {
		s := a.store
		a.mu.RUnlock()
		return s
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.store == nil {
		a.store = store.NewFileStore(a.config.IndexPath, store.WithLogger(a.logger))
	}
	return a.store
}

// Builder returns a catalog builder for the configured URL prefix.
func (a *App) Builder() *builder.Builder {
	return builder.New(
		builder.WithLogger(a.logger),
		builder.WithURLPrefix(a.config.URLPrefix),
	)
}

// Votes returns a recorder writing to the application log.
func (a *App) Votes() *votes.Recorder {
	return votes.NewRecorder(votes.WithLogger(a.logger))
}

// Shutdown performs graceful shutdown of the application. The store holds
// no open resources, so there is nothing to release beyond flushing logs.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Application shutdown")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a custom catalog store (useful for testing).
func WithStore(s *store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
