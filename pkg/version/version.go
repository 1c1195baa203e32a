// Package version exposes the build version, set at link time.
package version

// Version is overridden by the release build via
// -ldflags "-X github.com/ecotrack/ecotrack/pkg/version.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // Set via ldflags

// GetVersion returns the version stamped into this build.
func GetVersion() string {
	return Version
}
