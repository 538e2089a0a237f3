// Package version holds build-time identity, injected via ldflags.
package version

var (
	// Version is the release version.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String renders the full version line.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
