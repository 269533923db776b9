package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go"`
}

// currentBuild falls back to the VCS stamp of `go install` builds.
func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Built: date, GoVersion: runtime.Version()}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "none":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Built == "unknown":
			b.Built = s.Value
		}
	}
	return b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print overlayctl build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := currentBuild()
		if jsonOut {
			return printJSON(b)
		}
		fmt.Printf("overlayctl %s (%s)\n", b.Version, b.GoVersion)
		fmt.Printf("  commit: %s\n", b.Commit)
		fmt.Printf("  built:  %s\n", b.Built)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
