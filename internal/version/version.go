// Package version holds the build version, overridden at release time via
// -ldflags "-X chatpool/internal/version.Version=...".
package version

var Version = "dev"
