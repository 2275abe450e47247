// Package version carries build metadata stamped in with
// -ldflags "-X github.com/Ealfred1/ResQ-X-checklist/internal/version.Version=...".
package version

import "runtime"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// UserAgent identifies outbound requests made by this build.
func UserAgent(component string) string {
	return "resqx-" + component + "/" + Version
}
