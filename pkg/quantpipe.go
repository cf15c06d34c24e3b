// Package quantpipe holds build metadata shared by the CLI.
package quantpipe

var (
	// Version is set by build flags.
	Version = "dev"
	// Build is set by build flags to the build timestamp.
	Build = "unknown"
)
