package version

import "github.com/fatih/color"

// Build metadata for the adder CLI. Overridable at link time, e.g.
// -ldflags "-X adder/internal/version.GitCommit=$(git rev-parse HEAD)".

var (
	major = color.New(color.FgYellow, color.Bold)
	minor = color.New(color.FgGreen, color.Bold)
	patch = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = major.Sprint("0") + "." + minor.Sprint("1") + "." + patch.Sprint("0") + "-dev"

	// GitCommit is the commit hash the binary was built from, if recorded.
	GitCommit = ""

	// BuildDate is the build timestamp in ISO-8601, if recorded.
	BuildDate = ""
)
