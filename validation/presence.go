// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"strconv"
)

const maxPresenceDepth = 64

// Presence records which dotted field paths carried a value in a request.
// Explicit JSON nulls are treated as absent.
type Presence map[string]bool

// Has reports whether path was present.
func (p Presence) Has(path string) bool {
	return p != nil && p[path]
}

// PresenceOf walks a decoded JSON value tree, as produced by
// [encoding/json.Unmarshal] into an any, and marks every non-null member.
// Array elements are keyed by index, e.g. "tags.0".
func PresenceOf(tree any) Presence {
	p := make(Presence)
	markPresence(tree, "", p, 0)
	return p
}

// PresenceOfKeys marks each key. Used for flat parameter sets such as a
// query string.
func PresenceOfKeys[V any](m map[string]V) Presence {
	p := make(Presence, len(m))
	for k := range m {
		p[k] = true
	}
	return p
}

func markPresence(v any, prefix string, p Presence, depth int) {
	if depth > maxPresenceDepth {
		return
	}

	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				continue
			}
			path := join(prefix, k)
			p[path] = true
			markPresence(child, path, p, depth+1)
		}
	case []any:
		for i, child := range t {
			if child == nil {
				continue
			}
			path := join(prefix, strconv.Itoa(i))
			p[path] = true
			markPresence(child, path, p, depth+1)
		}
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
