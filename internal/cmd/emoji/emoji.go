// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants for status lines printed by commands.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "✗"

	// Warning marks a non-fatal problem, such as skipped files.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)
