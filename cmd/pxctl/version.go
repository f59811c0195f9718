package main

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pxtools/pxkit/px/meta"
)

const modulePath = "github.com/pxtools/pxkit"

// versionInfo describes the running binary as recorded by the Go toolchain.
type versionInfo struct {
	Module    string   `json:"module"`
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Revision  string   `json:"revision,omitempty"`
	Modified  bool     `json:"modified,omitempty"`
	Codepages []string `json:"codepages"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the pxkit version and supported codepages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

// buildVersion reads the module version from the embedded build info. pxctl
// may be built inside pxkit or as a dependency of another main module.
func buildVersion(bi *debug.BuildInfo, ok bool) versionInfo {
	v := versionInfo{Module: modulePath, Version: "(devel)", Codepages: meta.Codepages()}
	if !ok || bi == nil {
		return v
	}
	v.GoVersion = bi.GoVersion
	switch {
	case bi.Main.Path == modulePath:
		if bi.Main.Version != "" {
			v.Version = bi.Main.Version
		}
	default:
		for _, dep := range bi.Deps {
			if dep.Path != modulePath {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			if dep.Version != "" {
				v.Version = dep.Version
			}
			break
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			v.Revision = s.Value
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}

func runVersion() error {
	v := buildVersion(debug.ReadBuildInfo())
	if jsonOut {
		return printJSON(v)
	}
	printInfo("pxctl %s (%s)\n", v.Version, v.Module)
	if v.GoVersion != "" {
		printInfo("  go: %s\n", v.GoVersion)
	}
	if v.Revision != "" {
		rev := v.Revision
		if v.Modified {
			rev += " (modified)"
		}
		printInfo("  revision: %s\n", rev)
	}
	printInfo("  codepages: %s (others via the IANA registry)\n", strings.Join(v.Codepages, ", "))
	return nil
}
