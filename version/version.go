// Package version exposes build metadata for the blockprof command.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String renders the build metadata on one line per field. Unset ldflags
// values are omitted.
func String() string {
	var sb strings.Builder

	v := Version
	if v == "" {
		v = "devel"
	}

	fmt.Fprintf(&sb, "version:  %s\n", v)
	fmt.Fprintf(&sb, "revision: %s\n", Revision)

	if Branch != "" {
		fmt.Fprintf(&sb, "branch:   %s\n", Branch)
	}

	if BuildUser != "" {
		fmt.Fprintf(&sb, "user:     %s\n", BuildUser)
	}

	if BuildDate != "" {
		fmt.Fprintf(&sb, "date:     %s\n", BuildDate)
	}

	fmt.Fprintf(&sb, "go:       %s %s/%s\n", GoVersion, GoOS, GoArch)

	return sb.String()
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
