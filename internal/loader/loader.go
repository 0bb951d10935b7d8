// Package loader discovers and loads plugin shared libraries from a
// single configured directory (spec §4.3).
//
// Discovery and loading follow the teacher codebase's PluginDiscovery
// (api/internal/plugins/discovery.go) in spirit — a filesystem scan for
// the host's shared-library suffix, Go's plugin package to open each
// candidate and resolve a well-known symbol, and tolerance of per-file
// failures so one broken plugin never prevents the others from loading.
// Unlike that teacher code, discovery here is intentionally
// non-recursive (spec §4.3 requires scanning exactly one directory) and
// every plugin's advertised function set is validated as a whole before
// any of it is trusted, rather than resolved lazily per call.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"runtime"
	"sort"

	"github.com/SkanUJkod/SkanUJkod/internal/kernelerrors"
	"github.com/SkanUJkod/SkanUJkod/internal/logger"
	"github.com/SkanUJkod/SkanUJkod/internal/pluginapi"
)

// LoadedPlugin is one successfully loaded and validated plugin library,
// plus its provenance: the path it was loaded from and its position in
// load order (spec §3's plugin-descriptor provenance).
type LoadedPlugin struct {
	Descriptor pluginapi.Descriptor
	Path       string
	LoadOrder  int
}

// Rejected records one plugin library that failed to load or validate,
// and why.
type Rejected struct {
	Path string
	Err  *kernelerrors.KernelError
}

// Result is the outcome of one loader run: every plugin that loaded
// successfully, plus every one that was rejected and why.
type Result struct {
	Loaded   []LoadedPlugin
	Rejected []Rejected
}

// suffix returns the host platform's shared-library filename suffix.
// Go's plugin package is fully supported only on Linux; other platforms
// are included here for completeness of the host-suffix concept, not as
// a claim that plugin.Open works equally well there.
func suffix() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// opener abstracts plugin.Open/Lookup so loading can be exercised in
// tests without a real compiled .so file on disk.
type opener interface {
	Open(path string) (looker, error)
}

// looker abstracts the single Lookup call the loader needs from a loaded
// library.
type looker interface {
	Lookup(symbol string) (plugin.Symbol, error)
}

type realOpener struct{}

func (realOpener) Open(path string) (looker, error) {
	return plugin.Open(path)
}

// Load scans dir (non-recursively) for files whose basename ends in the
// host's shared-library suffix, in lexicographic order, and attempts to
// load and validate each as a plugin (spec §4.3). A missing or unreadable
// directory is a fatal PluginDirectoryUnavailable error; everything else
// is accumulated into the returned Result.
func Load(dir string) (*Result, error) {
	return load(dir, realOpener{})
}

func load(dir string, op opener) (*Result, error) {
	log := logger.Loader()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("plugin directory unavailable")
		return nil, kernelerrors.NewPluginDirectoryUnavailable(dir, err)
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == suffix() {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Strings(candidates)

	result := &Result{}
	seenQIDs := make(map[string]string)    // QID string -> plugin path that claimed it first
	seenPlugins := make(map[string]string) // plugin_id -> plugin path that claimed it first

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		desc, err := loadOne(op, path)
		if err != nil {
			kerr := asKernelError(path, err)
			result.Rejected = append(result.Rejected, Rejected{Path: path, Err: kerr})
			log.Warn().Str("path", path).Str("reason", kerr.Error()).Msg("plugin rejected")
			continue
		}

		if kerr := validate(desc, path, seenQIDs, seenPlugins); kerr != nil {
			result.Rejected = append(result.Rejected, Rejected{Path: path, Err: kerr})
			log.Warn().Str("path", path).Str("reason", kerr.Error()).Msg("plugin rejected")
			continue
		}

		seenPlugins[desc.ID] = path
		for _, fn := range desc.Functions {
			seenQIDs[fn.ID.String()] = path
		}

		result.Loaded = append(result.Loaded, LoadedPlugin{
			Descriptor: desc,
			Path:       path,
			LoadOrder:  len(result.Loaded),
		})
		log.Info().Str("path", path).Str("plugin_id", desc.ID).Int("functions", len(desc.Functions)).Msg("plugin loaded")
	}

	return result, nil
}

func loadOne(op opener, path string) (pluginapi.Descriptor, error) {
	lib, err := op.Open(path)
	if err != nil {
		return pluginapi.Descriptor{}, fmt.Errorf("open: %w", err)
	}

	sym, err := lib.Lookup(pluginapi.EntrySymbol)
	if err != nil {
		return pluginapi.Descriptor{}, fmt.Errorf("missing entry symbol %q: %w", pluginapi.EntrySymbol, err)
	}

	entry, ok := sym.(func() pluginapi.Descriptor)
	if !ok {
		return pluginapi.Descriptor{}, fmt.Errorf("entry symbol %q has the wrong signature, want func() pluginapi.Descriptor", pluginapi.EntrySymbol)
	}

	return entry(), nil
}

// validate enforces spec §4.3's load-time invariants: at least one
// function, self-consistent plugin_id, no intra-plugin duplicate QIDs, no
// cross-plugin duplicate QIDs, and no plugin_id shared across libraries
// (seenQIDs and seenPlugins track what's been claimed by already-loaded
// plugins in this run; spec §3's "plugin labels are unique per loaded
// library" and §9's open-question answer both require the plugin_id
// check independently of the QID check, since two libraries can declare
// the same plugin_id with entirely disjoint function sets).
func validate(desc pluginapi.Descriptor, path string, seenQIDs, seenPlugins map[string]string) *kernelerrors.KernelError {
	if len(desc.Functions) == 0 {
		return kernelerrors.NewPluginValidationFailed(path, "descriptor advertises no plugin functions")
	}

	if claimedBy, ok := seenPlugins[desc.ID]; ok {
		return kernelerrors.NewPluginValidationFailed(path, fmt.Sprintf("plugin_id %q already claimed by %s", desc.ID, claimedBy))
	}

	local := make(map[string]bool, len(desc.Functions))
	for _, fn := range desc.Functions {
		if fn.ID.Plugin != desc.ID {
			return kernelerrors.NewPluginValidationFailed(path,
				fmt.Sprintf("function %s has plugin_id %q, which does not match the plugin's own id %q", fn.ID, fn.ID.Plugin, desc.ID))
		}
		key := fn.ID.String()
		if local[key] {
			return kernelerrors.NewPluginValidationFailed(path, fmt.Sprintf("duplicate QID %s within plugin", key))
		}
		local[key] = true

		if claimedBy, ok := seenQIDs[key]; ok {
			return kernelerrors.NewPluginValidationFailed(path, fmt.Sprintf("QID %s already claimed by %s", key, claimedBy))
		}
	}

	return nil
}

func asKernelError(path string, err error) *kernelerrors.KernelError {
	return kernelerrors.NewPluginLoadFailed(path, err)
}
