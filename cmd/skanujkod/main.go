// Command skanujkod is the CLI front-end for the plugin kernel (spec §6):
// it discovers and loads plugins from a configured directory, then either
// lists every loaded plugin function or plans and executes one of them
// against CLI-supplied parameters.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SkanUJkod/SkanUJkod/internal/cliflags"
	"github.com/SkanUJkod/SkanUJkod/internal/executor"
	"github.com/SkanUJkod/SkanUJkod/internal/kernelerrors"
	"github.com/SkanUJkod/SkanUJkod/internal/loader"
	"github.com/SkanUJkod/SkanUJkod/internal/logger"
	"github.com/SkanUJkod/SkanUJkod/internal/manifest"
	"github.com/SkanUJkod/SkanUJkod/internal/params"
	"github.com/SkanUJkod/SkanUJkod/internal/planner"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
	"github.com/SkanUJkod/SkanUJkod/internal/registry"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger.Initialize(getEnv("SKANUJKOD_LOG_LEVEL", "info"), isTerminal())

	global, command, rest, err := cliflags.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	pluginDir := global.PluginDir
	if pluginDir == "" {
		pluginDir = getEnv("SKANUJKOD_PLUGIN_DIR", defaultPluginDir())
	}

	manifestPath := global.ManifestPath
	if manifestPath == "" {
		manifestPath = getEnv("SKANUJKOD_MANIFEST", filepath.Join(pluginDir, "manifest.yaml"))
	}

	loadResult, lerr := loader.Load(pluginDir)
	if lerr != nil {
		return reportFatal(lerr)
	}
	reportRejections(loadResult)

	reg := registry.Build(loadResult.Loaded)

	if command == "list" {
		printList(reg, global.Verbose)
		return 0
	}

	m, merr := manifest.Load(manifestPath)
	if merr != nil {
		fmt.Fprintln(os.Stderr, merr)
		return 2
	}

	target, ok, rerr := resolveTarget(m, reg, command)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr)
		return 2
	}
	if !ok {
		kerr := kernelerrors.NewUnknownTarget(command)
		fmt.Fprintln(os.Stderr, kerr.Error())
		return kerr.ExitCode()
	}

	paramValues, perr := cliflags.ParseParams(rest)
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr)
		return 2
	}
	pmap := params.New(paramValues)

	paramKeys := make(map[string]struct{}, len(paramValues))
	for k := range paramValues {
		paramKeys[k] = struct{}{}
	}

	plan, perr2 := planner.Plan(target, reg, paramKeys)
	if perr2 != nil {
		return reportFatal(perr2)
	}

	exec := executor.New(reg)
	result, eerr := exec.Run(plan, pmap)
	if eerr != nil {
		return reportFatal(eerr)
	}

	fmt.Println(result.Display())
	return 0
}

// resolveTarget maps a CLI command to a target QID. It tries the
// manifest first; if the command isn't a declared analysis name, it
// falls back to treating command as a bare function_id that must name
// exactly one registered plugin function (SPEC_FULL §10.3).
func resolveTarget(m *manifest.Manifest, reg *registry.Registry, command string) (qid.QID, bool, error) {
	if target, ok, err := m.Resolve(command); err != nil {
		return qid.QID{}, false, err
	} else if ok {
		return target, true, nil
	}

	var match qid.QID
	matches := 0
	for _, q := range reg.Enumerate() {
		if q.Function == command {
			match = q
			matches++
		}
	}
	if matches == 1 {
		return match, true, nil
	}
	return qid.QID{}, false, nil
}

func printList(reg *registry.Registry, verbose bool) {
	for _, q := range reg.Enumerate() {
		fmt.Println(q.String())
		if verbose {
			if path, ok := reg.LibraryPath(q); ok {
				fmt.Printf("    %s\n", path)
			}
		}
	}
}

// reportFatal prints err to the error stream and returns the exit code
// it maps to. The loader, planner and executor are documented to return
// only *kernelerrors.KernelError; the comma-ok form here keeps an
// unanticipated plain error from crashing the CLI instead of reporting
// it and exiting with code 1.
func reportFatal(err error) int {
	kerr, ok := err.(*kernelerrors.KernelError)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stderr, kerr.Error())
	return kerr.ExitCode()
}

func reportRejections(result *loader.Result) {
	if len(result.Rejected) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "loaded %d plugin(s), rejected %d:\n", len(result.Loaded), len(result.Rejected))
	for _, r := range result.Rejected {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", r.Path, r.Err.Error())
	}
}

func defaultPluginDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./plugins"
	}
	return filepath.Join(home, ".skanujkod", "plugins")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
