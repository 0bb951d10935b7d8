// Package qid implements the kernel's qualified identifier model.
//
// A QID names one plugin function: a (plugin_id, function_id) pair. QIDs
// are the sole cross-component currency in the kernel — dependencies,
// results, and plans are all keyed by QID.
package qid

import (
	"fmt"
	"strings"
	"unicode"
)

// Separator is the rendered delimiter between the plugin and function
// halves of a QID.
const Separator = "::"

// disallowedChars lists the path separators and common whitespace bytes
// QID halves may not contain, since QIDs appear in file paths, log lines,
// and error messages verbatim; validateHalf also rejects any other
// Unicode whitespace.
const disallowedChars = " \t\n\r/\\"

// QID is a qualified plugin-function identifier. It is comparable and
// usable directly as a map key; equality is byte-for-byte on both halves.
type QID struct {
	Plugin   string
	Function string
}

// New constructs a QID, validating that neither half is empty or contains
// whitespace or a path separator.
func New(plugin, function string) (QID, error) {
	if err := validateHalf("plugin_id", plugin); err != nil {
		return QID{}, err
	}
	if err := validateHalf("function_id", function); err != nil {
		return QID{}, err
	}
	return QID{Plugin: plugin, Function: function}, nil
}

func validateHalf(label, s string) error {
	if s == "" {
		return fmt.Errorf("qid: %s must not be empty", label)
	}
	if strings.ContainsAny(s, disallowedChars) || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("qid: %s %q contains whitespace or a path separator", label, s)
	}
	return nil
}

// String renders the QID as "plugin_id::function_id".
func (q QID) String() string {
	return q.Plugin + Separator + q.Function
}

// IsZero reports whether q is the zero value.
func (q QID) IsZero() bool {
	return q.Plugin == "" && q.Function == ""
}
