package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time. Empty values fall back to the module
// build info stamped by the Go toolchain.
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Modified  bool
}

// currentBuild merges the ldflags values with what debug.ReadBuildInfo
// reports. ldflags win.
func currentBuild(read func() (*debug.BuildInfo, bool)) buildInfo {
	b := buildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
	if bi, ok := read(); ok {
		if b.Version == "" && bi.Main.Version != "" {
			b.Version = bi.Main.Version
		}
		if bi.GoVersion != "" {
			b.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.BuildDate == "" {
					b.BuildDate = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if b.Version == "" {
		b.Version = "(devel)"
	}
	if len(b.Commit) > 12 {
		b.Commit = b.Commit[:12]
	}
	return b
}

func (b buildInfo) print(w io.Writer, catalog string) {
	fmt.Fprintln(w, "coursebuddy", b.Version)
	if b.Commit != "" {
		dirty := ""
		if b.Modified {
			dirty = " (modified)"
		}
		fmt.Fprintf(w, "  commit:  %s%s\n", b.Commit, dirty)
	}
	if b.BuildDate != "" {
		fmt.Fprintf(w, "  built:   %s\n", b.BuildDate)
	}
	fmt.Fprintf(w, "  go:      %s\n", b.GoVersion)
	if catalog != "" {
		fmt.Fprintf(w, "  catalog: %s\n", catalog)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build metadata and imported catalog version",
	Run: func(cmd *cobra.Command, args []string) {
		var catalog string
		if s, err := openStore(cmd); err == nil {
			catalog, _ = s.CourseRepo().CatalogVersion(cmd.Context())
			s.Close()
		}
		currentBuild(debug.ReadBuildInfo).print(cmd.OutOrStdout(), catalog)
	},
}
