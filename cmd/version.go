package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildDetails resolves the release metadata. Linker flags win when the
// release pipeline stamps them; otherwise fall back to whatever the Go
// toolchain embedded, so `go install` builds still report their provenance.
func buildDetails() (ver, rev, built string) {
	ver, rev, built = version, commit, date
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ver, rev, built
	}
	if ver == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		ver = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "none" {
				rev = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return ver, rev, built
}

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shelfwatch.",
	Long: `Display version information including build details.

Reports the release version, VCS revision, build timestamp, and Go
runtime, falling back to embedded build info when the binary was not
produced by the release pipeline. Include this output when reporting
bugs.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ver, rev, built := buildDetails()
		cmd.Printf("shelfwatch CLI\n")
		cmd.Printf("  Version: %s\n", ver)
		cmd.Printf("  Commit:  %s\n", rev)
		cmd.Printf("  Built:   %s\n", built)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
