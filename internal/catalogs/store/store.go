// Package store provides the process-wide catalog index cache.
//
// The index is read lazily on first use and kept for the life of the
// process. A rebuilt index is only picked up after a restart.
package store

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/StreamMUSE/streammuse/internal/metrics"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

// Loader reads the raw persisted index.
type Loader interface {
	ReadIndex(ctx context.Context) ([]byte, error)
}

// FileLoader reads the index from a local file.
type FileLoader struct {
	Path string
}

// ReadIndex implements Loader.
func (f FileLoader) ReadIndex(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("index", f.Path)
		}
		return nil, errors.WrapIO("read", f.Path, err)
	}
	return data, nil
}

// Store caches the decoded catalog after the first successful load.
type Store struct {
	loader Loader
	format catalogs.Format
	logger *zerolog.Logger

	flight singleflight.Group

	mu     sync.RWMutex
	groups []catalogs.CardGroup
	loaded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger load failures are reported to.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFormat sets the index encoding. Defaults to JSON.
func WithFormat(format catalogs.Format) Option {
	return func(s *Store) {
		s.format = format
	}
}

// New creates a Store reading through loader.
func New(loader Loader, opts ...Option) *Store {
	s := &Store{
		loader: loader,
		format: catalogs.FormatJSON,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFileStore creates a Store over the index file at path, inferring the
// format from its extension.
func NewFileStore(path string, opts ...Option) *Store {
	opts = append([]Option{WithFormat(catalogs.FormatFromPath(path))}, opts...)
	return New(FileLoader{Path: path}, opts...)
}

// Load returns the catalog. The first successful read is cached and shared
// by every caller; concurrent first calls wait on a single read. A failed
// read is logged and yields an empty catalog without being cached, so the
// next call tries again.
func (s *Store) Load(ctx context.Context) []catalogs.CardGroup {
	if groups, ok := s.cached(); ok {
		return groups
	}

	v, _, _ := s.flight.Do("catalog", func() (any, error) {
		// Double-check: a flight that finished just before this one
		// started may already have filled the cache.
		if groups, ok := s.cached(); ok {
			return groups, nil
		}

		// The read is shared by every waiting caller, so it must not end
		// when the caller that started it goes away.
		groups, err := s.read(context.WithoutCancel(ctx))
		if err != nil {
			metrics.CatalogLoads.WithLabelValues(metrics.OutcomeFailure).Inc()
			s.logger.Error().Err(err).Msg("Failed to read or parse catalog index")
			return []catalogs.CardGroup{}, nil
		}

		s.mu.Lock()
		s.groups = groups
		s.loaded = true
		s.mu.Unlock()

		metrics.CatalogLoads.WithLabelValues(metrics.OutcomeSuccess).Inc()
		metrics.CatalogGroups.Set(float64(len(groups)))
		s.logger.Info().Int("groups", len(groups)).Msg("Loaded catalog index")
		return groups, nil
	})

	return v.([]catalogs.CardGroup)
}

// Loaded reports whether a catalog has been cached.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the number of cached groups, or zero before the first load.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups)
}

func (s *Store) cached() ([]catalogs.CardGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups, s.loaded
}

func (s *Store) read(ctx context.Context) ([]catalogs.CardGroup, error) {
	data, err := s.loader.ReadIndex(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", "", err)
	}
	groups, err := catalogs.DecodeIndex(data, s.format)
	if err != nil {
		return nil, errors.WrapResource("decode", "catalog", "", err)
	}
	return groups, nil
}
