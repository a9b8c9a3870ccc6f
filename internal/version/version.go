// Package version holds build metadata set through -ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docsync/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("docsync %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
