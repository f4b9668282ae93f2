package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time. When they are not, buildInfo falls back to
// what the Go toolchain stamped into the binary.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v, commit, date := buildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "leveltrack %s (commit: %s, built: %s)\n", v, commit, date)
	},
}

// VersionString is the short form reported by /api/health.
func VersionString() string {
	v, commit, _ := buildInfo()
	return fmt.Sprintf("%s (%s)", v, commit)
}

func buildInfo() (version, commit, date string) {
	version, commit, date = Version, Commit, BuildDate

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "unknown":
			commit = s.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return
}
