package lightbulbflow

import "fmt"

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version, set via ldflags.
	Version = "dev"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString formats the build information for --version output.
func VersionString() string {
	return fmt.Sprintf("lightbulbflow %s (compiled %s)", Version, CompiledAt)
}
