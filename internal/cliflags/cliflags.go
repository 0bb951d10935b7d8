// Package cliflags parses the kernel's command-line surface (spec §6):
// a handful of global flags controlling kernel configuration, followed
// by a command — either "list" or an analysis name — followed by
// `--<param>=<value>` pairs whose names are declared by plugins, not the
// CLI, so they can't be registered with pflag ahead of time.
//
// Global flags are parsed with github.com/spf13/pflag for POSIX/GNU-style
// long-flag parsing; pflag's SetInterspersed(false) stops flag parsing
// at the first non-flag argument, which is exactly the command/analysis
// name boundary this surface needs. Everything after that boundary is
// parsed by ParseParams, since those flag names are plugin-declared and
// unknown to pflag's registration model.
package cliflags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/SkanUJkod/SkanUJkod/internal/paramvalue"
)

// Global holds the kernel-level flags that precede the command.
type Global struct {
	PluginDir    string
	ManifestPath string
	Verbose      bool
}

// Parse splits args into the global flags, the command (the first
// non-flag token: "list" or an analysis name), and the raw parameter
// arguments that follow it.
func Parse(args []string) (global Global, command string, rest []string, err error) {
	fs := pflag.NewFlagSet("skanujkod", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	fs.StringVar(&global.PluginDir, "plugin-dir", "", "override the configured plugin directory")
	fs.StringVar(&global.ManifestPath, "manifest", "", "override the analysis manifest path")
	fs.BoolVar(&global.Verbose, "verbose", false, "include library paths in list output")

	if err := fs.Parse(args); err != nil {
		return Global{}, "", nil, fmt.Errorf("cliflags: %w", err)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return Global{}, "", nil, fmt.Errorf("cliflags: no command given (expected %q or an analysis name)", "list")
	}

	return global, remaining[0], remaining[1:], nil
}

// ParseParams turns `--<param>=<value>` arguments into a parameter
// value map, guessing each value's kind via paramvalue.ParseCLIValue.
func ParseParams(args []string) (map[string]paramvalue.Value, error) {
	out := make(map[string]paramvalue.Value, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("cliflags: expected --<param>=<value>, got %q", arg)
		}
		body := strings.TrimPrefix(arg, "--")
		key, value, found := strings.Cut(body, "=")
		if !found {
			return nil, fmt.Errorf("cliflags: expected --<param>=<value>, got %q", arg)
		}
		out[key] = paramvalue.ParseCLIValue(value)
	}
	return out, nil
}
