// Package constants provides shared constants used throughout the streammuse
// codebase. This includes catalog defaults, placeholder instance metadata,
// timeouts, file permissions and HTTP limits that should stay consistent
// between the offline builder and the serving process.
package constants

import "time"

// Catalog layout constants
const (
	// MIDIExtension is the file extension of catalogued artifacts
	MIDIExtension = ".mid"

	// LayoutDepth is the number of path segments below the content root:
	// model/params/dataset/mode/filename
	LayoutDepth = 5

	// DefaultContentRoot is where the builder looks for generated files
	DefaultContentRoot = "public/audio"

	// DefaultIndexPath is where the builder writes, and the server reads, the index
	DefaultIndexPath = "public/metadata/audio_catalog.json"

	// DefaultURLPrefix is prepended to an instance's relative path to form its URL
	DefaultURLPrefix = "/audio"

	// LockSuffix is appended to the index path to form the builder lock file
	LockSuffix = ".lock"

	// LockTimeout bounds how long a build waits for another build to finish
	LockTimeout = 10 * time.Second

	// LockRetryInterval is how often a waiting build retries the lock
	LockRetryInterval = 200 * time.Millisecond
)

// Placeholder instance metadata written by the builder. No live aggregation
// exists, so every instance starts from the same values.
const (
	PlaceholderDuration     = 30
	PlaceholderFileSize     = "N/A"
	DefaultFormat           = "midi"
	PlaceholderTopP         = 0.9
	PlaceholderSeed         = 1234
	InitialVotes            = 0
	InitialEloRating        = 1500
	InitialTotalComparisons = 0
)

// Query constants
const (
	// DefaultPageSize is the default number of groups per page
	DefaultPageSize = 48

	// AllValue is the filter value meaning "no constraint"
	AllValue = "all"
)

// HTTP server constants
const (
	// DefaultHost is the default bind address
	DefaultHost = "localhost"

	// DefaultPort is the default listen port
	DefaultPort = 8080

	// DefaultPathPrefix is the default API path prefix
	DefaultPathPrefix = "/api"

	// DefaultRateLimit is the default requests per minute per IP
	DefaultRateLimit = 600

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 20

	// MaxRequestBodySize bounds vote request bodies
	MaxRequestBodySize = 1 << 20

	// CacheTTL is the default time-to-live for cached query responses
	CacheTTL = 5 * time.Minute

	// ReadTimeout is the default HTTP read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the default HTTP write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the default HTTP idle timeout
	IdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
