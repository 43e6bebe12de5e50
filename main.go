package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// persistentFlags are bound to the viper key of the same name with dashes
// replaced by underscores.
var persistentFlags = []struct {
	name, usage string
}{
	{"board", "board to browse (default \"wsg\")"},
	{"data-dir", "directory for stores, database and log (default ~/.config/chantv)"},
	{"storage", "store backend: file or sqlite (default \"file\")"},
	{"player", "external player command for media, e.g. \"mpv --loop\""},
	{"log-level", "debug, info, warn or error (default \"info\")"},
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:          "chantv",
		Short:        "Browse board video threads from the terminal",
		Long:         "chantv pages through a board's threads, keeps favourites and hidden threads, and plays thread media.",
		Example:      fmt.Sprintf("  %s\n  %s list --limit 10\n  %s --board gif --player mpv", os.Args[0], os.Args[0], os.Args[0]),
		Version:      versionString(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, v)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	for _, f := range persistentFlags {
		flags.String(f.name, "", f.usage)
	}
	flags.Int("page-size", 0, "threads per page (default 30)")
	for _, name := range append(flagNames(), "page-size") {
		// Lookup never fails for flags registered above.
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}

	root.AddCommand(newListCommand(v))
	root.AddCommand(newFavouritesCommand(v))
	root.AddCommand(newConfigCommand(v))
	root.AddCommand(newVersionCommand())
	return root
}

func flagNames() []string {
	names := make([]string, 0, len(persistentFlags))
	for _, f := range persistentFlags {
		names = append(names, f.name)
	}
	return names
}

func versionString() string {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	return fmt.Sprintf("chantv %s\ncommit: %s\nbuilt: %s", v, c, d)
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
