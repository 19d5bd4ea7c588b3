package store

import (
	"strings"
)

// DefaultSeparator separates the structure name from the item key.
const DefaultSeparator = ":"

// KeyScheme derives physical store keys from a logical structure name.
// Structures that live in a single remote key (list, set, hash, stream, ...)
// only use Base. The key-value adapter stores every item under its own key
// "<name><sep><key>".
type KeyScheme struct {
	Name      string
	Separator string
}

// NewKeyScheme creates a key scheme for the given structure name using DefaultSeparator
func NewKeyScheme(name string) KeyScheme {
	return KeyScheme{Name: name, Separator: DefaultSeparator}
}

// Base returns the physical key of single-key structures
func (k KeyScheme) Base() string {
	return k.Name
}

// Key returns the physical key of an item
func (k KeyScheme) Key(item string) string {
	return k.prefix() + item
}

// Item strips the namespace prefix from a physical key.
// The boolean is false if the key does not belong to this namespace.
// Only the prefix is removed, so item keys may contain the separator.
func (k KeyScheme) Item(physical string) (string, bool) {
	return strings.CutPrefix(physical, k.prefix())
}

// Pattern returns a glob pattern matching every item key of the namespace.
// Glob meta characters in the name are escaped.
func (k KeyScheme) Pattern() string {
	return escapeGlob(k.prefix()) + "*"
}

func (k KeyScheme) prefix() string {
	return k.Name + k.Separator
}

// escapeGlob escapes the characters that have a special meaning in store glob patterns
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
