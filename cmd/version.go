// Package cmd holds build metadata injected with -ldflags "-X".
package cmd

// Build metadata. Release builds overwrite these values.
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
