// Package version holds build-time version information for the capsule CLI.
//
// The variables below are injected during build via ldflags:
//
//	-ldflags "-X capsule/internal/version.version=v1.0.0 -X capsule/internal/version.commit=abc123 -X capsule/internal/version.buildTime=2025-01-01T00:00:00Z"
package version

import (
	"fmt"
	"io"
	"time"
)

// Set via ldflags during build; not modified directly in code.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string
)

// ApplicationName is the name displayed in version output.
const ApplicationName = "Capsule CLI"

// Defaults used when build information was not injected.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// Info carries the resolved version information for one build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Current resolves the build-time variables into an Info, substituting
// defaults for anything the build did not inject.
func Current() *Info {
	return &Info{
		Version:   orDefault(version, DefaultVersion),
		Commit:    orDefault(commit, DefaultCommit),
		BuildTime: orDefault(buildTime, DefaultBuildTime),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Write renders the version to w: only the version number when short is
// set, otherwise the full multi-line form.
func (i *Info) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, i.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nVersion: %s\nCommit: %s\nBuilt: %s\n",
		ApplicationName, i.Version, i.Commit, i.BuildTime)
	return err
}

// IsDevelopment reports whether this is an un-versioned development build.
func (i *Info) IsDevelopment() bool {
	return i.Version == DefaultVersion
}

// BuildTimestamp parses the build time as RFC3339. It returns the zero
// time when the value is absent or not parseable.
func (i *Info) BuildTimestamp() time.Time {
	if i.BuildTime == DefaultBuildTime {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, i.BuildTime)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// SetBuildVars overrides the build-time variables. Test hook; real values
// come from ldflags.
func SetBuildVars(ver, com, built string) {
	version = ver
	commit = com
	buildTime = built
}

// ResetBuildVars clears the build-time variables. Test hook.
func ResetBuildVars() {
	version = ""
	commit = ""
	buildTime = ""
}
