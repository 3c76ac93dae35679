// Package buildinfo carries the version stamped in at link time:
//
//	go build -ldflags "-X tradecalc/internal/buildinfo.Version=v1.2.0 -X tradecalc/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and banner.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// String is the full banner line.
func String() string {
	return fmt.Sprintf("tradecalc %s (commit %s, built %s)", Short(), Commit, Date)
}
