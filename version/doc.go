// Package version reports build information for the stdmath binary.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags; anything left unset falls back to the VCS stamps Go
// embeds at build time:
//
//	go build -ldflags "-X github.com/kbukum/stdmath/version.Version=1.0.0" ./cmd/stdmath
package version
