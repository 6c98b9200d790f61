// Package version holds build information injected by ldflags.
package version

var (
	// Version is the running release (e.g. "1.4.2"), "dev" for local builds
	Version = "dev"
	// GitCommit is the commit the binary was built from
	GitCommit = ""
	// BuildDate is the build timestamp
	BuildDate = ""
)

// IsDev reports whether this is a development build
func IsDev() bool {
	return Version == "" || Version == "dev"
}
