package version

import "runtime/debug"

// Build-time parameters set via -ldflags
var Version = "unknown"

// Builds made with `go install` carry no -ldflags, but the module version is
// embedded in the build info.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion != "" && mainVersion != "(devel)" {
		Version = mainVersion
	}
}
