// Package kernelerrors implements the kernel's fixed error taxonomy
// (spec §7). Every condition spec.md names is reported through a single
// *KernelError carrying a Kind, a human-readable Message, and optional
// Details — the same shape the wider codebase's AppError uses for HTTP
// errors, adapted here to map to process exit codes instead of HTTP
// status codes.
package kernelerrors

import "fmt"

// Kind identifies one of the fixed failure conditions spec.md §7 defines.
type Kind string

const (
	// PluginDirectoryUnavailable: the configured directory is missing or
	// unreadable. Fatal at load.
	PluginDirectoryUnavailable Kind = "PLUGIN_DIRECTORY_UNAVAILABLE"
	// PluginLoadFailed: a specific library could not be opened or lacked
	// the entry symbol. Non-fatal; load continues with other plugins.
	PluginLoadFailed Kind = "PLUGIN_LOAD_FAILED"
	// PluginValidationFailed: descriptor malformed, duplicate QID, or a
	// self-inconsistent plugin_id. Non-fatal per-plugin.
	PluginValidationFailed Kind = "PLUGIN_VALIDATION_FAILED"
	// UnknownTarget: the CLI-supplied target QID is not registered.
	// Fatal before planning.
	UnknownTarget Kind = "UNKNOWN_TARGET"
	// MissingDependency: a referenced dependency QID is not registered.
	// Fatal at planning.
	MissingDependency Kind = "MISSING_DEPENDENCY"
	// DependencyCycle: the transitive closure of the target contains a
	// cycle. Fatal at planning.
	DependencyCycle Kind = "DEPENDENCY_CYCLE"
	// MissingParameter: a plugin function in the plan requires a
	// parameter key absent from the parameter map. Fatal at planning.
	MissingParameter Kind = "MISSING_PARAMETER"
	// PluginFunctionFailed: a plugin function signaled failure during
	// execution. Fatal; the run aborts.
	PluginFunctionFailed Kind = "PLUGIN_FUNCTION_FAILED"
)

// KernelError is the single error type the kernel returns for every
// condition in the taxonomy above.
type KernelError struct {
	Kind    Kind
	Message string
	Details string

	cause error
}

// Error implements the error interface.
func (e *KernelError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *KernelError) Unwrap() error {
	return e.cause
}

// ExitCode implements spec §7's user-visible exit-code mapping: 0 is
// reserved for success and is never returned by a KernelError; 1 for any
// *Plugin...Failed kind encountered during execution; 2 for planning
// errors; 3 for PluginDirectoryUnavailable.
func (e *KernelError) ExitCode() int {
	switch e.Kind {
	case PluginDirectoryUnavailable:
		return 3
	case UnknownTarget, MissingDependency, DependencyCycle, MissingParameter:
		return 2
	case PluginFunctionFailed:
		return 1
	default:
		return 1
	}
}

func new(kind Kind, message string) *KernelError {
	return &KernelError{Kind: kind, Message: message}
}

func newWithDetails(kind Kind, message, details string) *KernelError {
	return &KernelError{Kind: kind, Message: message, Details: details}
}

func wrap(kind Kind, message string, err error) *KernelError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &KernelError{Kind: kind, Message: message, Details: details, cause: err}
}

// NewPluginDirectoryUnavailable reports that the configured plugin
// directory at path could not be used, wrapping the underlying cause.
func NewPluginDirectoryUnavailable(path string, cause error) *KernelError {
	return wrap(PluginDirectoryUnavailable, fmt.Sprintf("plugin directory %q is missing or unreadable", path), cause)
}

// NewPluginLoadFailed reports that the library at path could not be
// opened or lacked the entry symbol.
func NewPluginLoadFailed(path string, cause error) *KernelError {
	return wrap(PluginLoadFailed, fmt.Sprintf("failed to load plugin library %q", path), cause)
}

// NewPluginValidationFailed reports that the library at path produced a
// descriptor that failed validation, for reason.
func NewPluginValidationFailed(path, reason string) *KernelError {
	return newWithDetails(PluginValidationFailed, fmt.Sprintf("plugin library %q failed validation", path), reason)
}

// NewUnknownTarget reports that target names no registered plugin
// function.
func NewUnknownTarget(target string) *KernelError {
	return new(UnknownTarget, fmt.Sprintf("target %q is not a registered plugin function", target))
}

// NewMissingDependency reports that referrer declares a dependency on
// missing, which resolves to no registered plugin function.
func NewMissingDependency(referrer, missing string) *KernelError {
	return newWithDetails(MissingDependency,
		fmt.Sprintf("%s depends on %s, which is not registered", referrer, missing),
		missing)
}

// NewDependencyCycle reports a cycle among the given QIDs, given in the
// order they appeared on the traversal stack, closing the loop back to
// the first participant.
func NewDependencyCycle(cycle []string) *KernelError {
	path := ""
	for i, q := range cycle {
		if i > 0 {
			path += " -> "
		}
		path += q
	}
	if len(cycle) > 0 {
		path += " -> " + cycle[0]
	}
	return newWithDetails(DependencyCycle, "dependency cycle detected", path)
}

// NewMissingParameter reports that target requires parameter key which
// is absent from the supplied parameter map.
func NewMissingParameter(target, key string) *KernelError {
	return newWithDetails(MissingParameter,
		fmt.Sprintf("%s requires parameter %q, which was not supplied", target, key),
		key)
}

// NewPluginFunctionFailed reports that the plugin function identified by
// target signaled failure during execution, wrapping its message.
func NewPluginFunctionFailed(target string, cause error) *KernelError {
	return wrap(PluginFunctionFailed, fmt.Sprintf("plugin function %s failed", target), cause)
}
