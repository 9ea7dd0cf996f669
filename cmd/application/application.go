// Package application provides the application interface for streammuse commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            groups := app.Catalog().Load(cmd.Context())
//	            // ... use groups
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    CatalogFunc: func() application.Catalog {
//	        return testCatalog
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/internal/catalogs/builder"
	"github.com/StreamMUSE/streammuse/internal/votes"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
)

// Catalog is the read side of the catalog index. *store.Store implements it.
type Catalog interface {
	// Load returns the catalog, reading the index on first use. It never
	// fails; an unreadable index yields an empty catalog.
	Load(ctx context.Context) []catalogs.CardGroup

	// Loaded reports whether an index has been read successfully.
	Loaded() bool

	// Len returns the number of cached groups.
	Len() int
}

// Application provides the application interface that commands need.
// The App struct from cmd/streammuse/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Catalog returns the process-wide catalog store (lazy-initialized).
	Catalog() Catalog

	// Builder returns a catalog builder configured with the URL prefix.
	Builder() *builder.Builder

	// Votes returns the vote recorder.
	Votes() *votes.Recorder

	// ContentRoot is the directory holding the generated MIDI tree.
	ContentRoot() string

	// IndexPath is the catalog index file the builder writes and the server reads.
	IndexPath() string

	// URLPrefix is prepended to instance paths to form their URLs.
	URLPrefix() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
