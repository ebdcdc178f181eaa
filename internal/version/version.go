// Package version carries the build identity stamped into the sable
// binary. Release builds override the variables with -ldflags; a plain
// source build reports the dev version.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version, undecorated so it is safe to
	// embed in machine-readable output.
	Version = "0.1.0-dev"

	// GitCommit and BuildDate are filled by the release pipeline and
	// stay empty in source builds.
	GitCommit = ""
	BuildDate = ""
)

var (
	majorStyle = color.New(color.FgYellow, color.Bold)
	minorStyle = color.New(color.FgGreen, color.Bold)
	patchStyle = color.New(color.FgBlue, color.Bold)
)

// Pretty renders the version with each semver component tinted for
// terminal output. Anything that is not dotted major.minor.patch comes
// back unchanged.
func Pretty() string {
	rest, suffix := Version, ""
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		rest, suffix = rest[:i], rest[i:]
	}
	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version
	}
	return majorStyle.Sprint(parts[0]) + "." +
		minorStyle.Sprint(parts[1]) + "." +
		patchStyle.Sprint(parts[2]) + suffix
}
