// Package envelope implements the kernel's type-erased result container.
//
// An Envelope carries the owned, immutable output of one plugin-function
// invocation plus a human-readable display projection. The kernel never
// inspects the payload's concrete type; only a downstream plugin function
// that knows, by declaration, which upstream it consumes may reinterpret
// it. That reinterpretation is unchecked by design (spec §4.2, §9) — a
// mismatched pair of compiled plugins is a deployment error, not something
// the kernel can detect at the type level.
package envelope

// Envelope is the opaque, immutable carrier produced by a plugin function.
// The zero value is not valid; construct with New.
type Envelope struct {
	payload any
	display string
}

// New wraps an owned payload value and its display projection into an
// Envelope. The payload must not hold references into memory private to
// the producing plugin library that would dangle once that library is
// unloaded — the kernel does not and cannot verify this; it is a
// requirement on plugin authors (spec §5's cross-library safety).
func New(payload any, display string) Envelope {
	return Envelope{payload: payload, display: display}
}

// Payload returns the opaque payload. Downgrading it to a concrete type
// is the caller's responsibility and is not validated here.
func (e Envelope) Payload() any {
	return e.payload
}

// Display returns the envelope's human-readable projection, used for
// terminal output and error messages.
func (e Envelope) Display() string {
	return e.display
}
