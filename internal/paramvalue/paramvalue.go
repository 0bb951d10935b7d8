// Package paramvalue implements the kernel's parameter-value variant.
//
// Parameter values are opaque to the kernel (spec §3, §4.7, §9): the
// kernel only moves them by key, never interprets them. It supports the
// two minimum kinds spec.md requires — text and boolean-or-numeric — plus
// one convenience kind, a filesystem path, left as an explicit addition
// per §9's "optionally: integer, path" note. Additional kinds can be added
// without breaking the kernel, since consumers switch on Kind() rather
// than relying on an exhaustive type assertion.
package paramvalue

import (
	"fmt"
	"strconv"
)

// Kind identifies which of Value's fields holds meaningful data.
type Kind int

const (
	// KindText holds an arbitrary string.
	KindText Kind = iota
	// KindBool holds a boolean flag.
	KindBool
	// KindNumber holds a float64-represented number.
	KindNumber
	// KindPath holds a filesystem path, kept distinct from KindText so a
	// plugin can tell "a string" from "a string that names a file" at a
	// glance without re-parsing it.
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Value is an immutable, opaque parameter value. The zero value is a
// KindText value of "".
type Value struct {
	kind Kind
	text string
	num  float64
	flag bool
}

// Text constructs a text-kind value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool constructs a boolean-kind value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Number constructs a numeric-kind value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Path constructs a path-kind value.
func Path(s string) Value { return Value{kind: KindPath, text: s} }

// Kind reports which kind of value this is.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the underlying text for KindText or KindPath values, and
// ok=false otherwise. It does not coerce between kinds.
func (v Value) AsText() (s string, ok bool) {
	if v.kind == KindText || v.kind == KindPath {
		return v.text, true
	}
	return "", false
}

// AsBool returns the underlying boolean for KindBool values, and ok=false
// otherwise.
func (v Value) AsBool() (b bool, ok bool) {
	if v.kind == KindBool {
		return v.flag, true
	}
	return false, false
}

// AsNumber returns the underlying number for KindNumber values, and
// ok=false otherwise.
func (v Value) AsNumber() (n float64, ok bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return 0, false
}

// String renders the value for display and error messages. It never
// fails — callers needing the typed value should use the As* accessors.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindPath:
		return v.text
	case KindBool:
		return fmt.Sprintf("%t", v.flag)
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	default:
		return ""
	}
}

// ParseCLIValue turns a raw "--key=value" value string into a Value,
// guessing bool or number kinds opportunistically and falling back to
// text. The kernel does not itself call this — it lives here because the
// CLI front-end and test fixtures both need the same best-effort guess,
// and the kernel's "kernel does not enforce a kind per key" contract
// (spec §4.7) means a plugin author who wanted a stricter kind would
// disambiguate in their own Handle, not here.
func ParseCLIValue(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, ok := parseFloat(raw); ok {
		return Number(n)
	}
	return Text(raw)
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
