// Package secret provides a redacting string wrapper so credential material
// can pass through the system without leaking via logging, JSON encoding,
// or %v/%s formatting. The wrapped value is held as an ordinary Go string;
// its memory is not cleared when the wrapper is dropped.
package secret

import "log/slog"

const redacted = "<redacted>"

// String wraps a sensitive string value. Every path that could surface its
// contents — String, GoString, MarshalJSON, LogValue — returns a fixed
// placeholder instead. Callers needing the real value call Expose
// explicitly, which makes accidental logging grep-able in review.
type String struct {
	value string
}

// New wraps value in a String.
func New(value string) String {
	return String{value: value}
}

// Expose returns the wrapped value. The name is deliberately loud.
func (s String) Expose() string {
	return s.value
}

// IsEmpty reports whether the wrapped value is the empty string.
func (s String) IsEmpty() bool {
	return s.value == ""
}

func (s String) String() string {
	return redacted
}

func (s String) GoString() string {
	return redacted
}

func (s String) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (s String) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
