// Package buildinfo holds release metadata reported by 'vaudit version'.
package buildinfo

// These values are injected via ldflags for release binaries, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/vaudit/internal/buildinfo.Version=v0.1.0"
//
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
