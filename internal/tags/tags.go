// Package tags normalizes heterogeneous tag representations into a
// canonical ordered list of strings.
//
// Upstream sources disagree on what a tag list looks like: the API source
// returns a string array, RSS categories arrive one-or-many, and some
// feeds join tags into a single comma-separated string. Value captures
// that union once, at the adapter boundary; Normalize resolves it exactly
// once, and nothing downstream branches on the representation again.
package tags

import "strings"

// kind discriminates the tag representations a source can produce.
type kind int

const (
	kindNone kind = iota
	kindList
	kindDelimited
)

// Value is the unresolved tag representation attached to a record by its
// source adapter. The zero value means "no tags".
type Value struct {
	kind kind
	list []string
	raw  string
}

// None returns a Value representing an absent or null tag field.
func None() Value {
	return Value{kind: kindNone}
}

// FromList returns a Value wrapping a native tag array.
func FromList(list []string) Value {
	return Value{kind: kindList, list: list}
}

// FromString returns a Value wrapping a comma-separated tag string.
func FromString(raw string) Value {
	return Value{kind: kindDelimited, raw: raw}
}

// Normalize resolves the value into the canonical form: an ordered slice
// of trimmed, non-empty strings. Source order is preserved; duplicates
// within a single record's list are kept. The result is never nil.
func (v Value) Normalize() []string {
	switch v.kind {
	case kindList:
		return clean(v.list)
	case kindDelimited:
		return clean(strings.Split(v.raw, ","))
	default:
		return []string{}
	}
}

// clean trims each segment and drops empty or whitespace-only entries.
func clean(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
