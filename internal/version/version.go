// Package version exposes the build identity stamped in at link time.
package version

// Overridden by -ldflags "-X ..." in release builds; the zero values mark
// a local dev build.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
