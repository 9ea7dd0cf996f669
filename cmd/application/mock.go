package application

import (
	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/internal/catalogs/builder"
	"github.com/StreamMUSE/streammuse/internal/votes"
	"github.com/StreamMUSE/streammuse/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	CatalogFunc      func() Catalog
	BuilderFunc      func() *builder.Builder
	VotesFunc        func() *votes.Recorder
	ContentRootFunc  func() string
	IndexPathFunc    func() string
	URLPrefixFunc    func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Catalog returns a catalog using the mock function or nil.
func (m *Mock) Catalog() Catalog {
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	return nil
}

// Builder returns a builder using the mock function or one logging to the mock logger.
func (m *Mock) Builder() *builder.Builder {
	if m.BuilderFunc != nil {
		return m.BuilderFunc()
	}
	return builder.New(builder.WithLogger(m.Logger()), builder.WithURLPrefix(m.URLPrefix()))
}

// Votes returns a recorder using the mock function or one logging to the mock logger.
func (m *Mock) Votes() *votes.Recorder {
	if m.VotesFunc != nil {
		return m.VotesFunc()
	}
	return votes.NewRecorder(votes.WithLogger(m.Logger()))
}

// ContentRoot returns the content root using the mock function or the default.
func (m *Mock) ContentRoot() string {
	if m.ContentRootFunc != nil {
		return m.ContentRootFunc()
	}
	return constants.DefaultContentRoot
}

// IndexPath returns the index path using the mock function or the default.
func (m *Mock) IndexPath() string {
	if m.IndexPathFunc != nil {
		return m.IndexPathFunc()
	}
	return constants.DefaultIndexPath
}

// URLPrefix returns the URL prefix using the mock function or the default.
func (m *Mock) URLPrefix() string {
	if m.URLPrefixFunc != nil {
		return m.URLPrefixFunc()
	}
	return constants.DefaultURLPrefix
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
