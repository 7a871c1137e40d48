// Package buildinfo carries the version stamped in by the linker:
//
//	go build -ldflags "-X smkshell/internal/buildinfo.Version=v0.3.0 -X smkshell/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for banners and titles.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns Short plus the commit and date when known.
func Long() string {
	s := Short()
	if Commit != "" && Commit != "unknown" && s != Commit {
		s += " commit " + Commit
	}
	if Date != "" && Date != "unknown" {
		s += " built " + Date
	}
	return s
}
