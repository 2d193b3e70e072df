// Package version holds the compiler version and its colored rendering.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Overridable at build time via -ldflags "-X xypher/internal/version.Version=...".
var (
	// Version is the plain semantic version; manifests are checked against it.
	Version = "0.1.0-dev"

	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Pretty renders Version with one color per component. Pre-release and
// build suffixes stay uncolored.
func Pretty() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// Describe is the full `xyc version` text.
func Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "xyc %s", Pretty())
	if GitCommit != "" {
		fmt.Fprintf(&sb, " (%s)", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", BuildDate)
	}
	if GitMessage != "" {
		fmt.Fprintf(&sb, "\n%s", GitMessage)
	}
	return sb.String()
}
