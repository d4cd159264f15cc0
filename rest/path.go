// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"path"
	"slices"
)

// PathElement represents a component of a URL path template.
type PathElement interface {
	pathElement() string
}

// PathSegment is a static component of a URL path.
type PathSegment string

func (s PathSegment) pathElement() string {
	return string(s)
}

// PathParam is a named, templated component of a URL path. Its value is
// bound to the params struct field tagged path:"<name>".
type PathParam string

func (p PathParam) pathElement() string {
	return "{" + string(p) + "}"
}

// Path is a URL path template built with [BasePath].
type Path []PathElement

// BasePath starts a new path template.
//
// Example:
//
//	rest.BasePath("/api/articles").Param("slug").Segment("comments")
//	// Results in: /api/articles/{slug}/comments
func BasePath(s string) Path {
	return Path{PathSegment(s)}
}

// Segment returns a copy of p with a static segment appended.
func (p Path) Segment(s string) Path {
	return append(slices.Clip(p), PathSegment(s))
}

// Param returns a copy of p with a path parameter appended.
func (p Path) Param(name string) Path {
	return append(slices.Clip(p), PathParam(name))
}

// Params lists the names of every path parameter in order.
func (p Path) Params() []string {
	var names []string
	for _, el := range p {
		if pp, ok := el.(PathParam); ok {
			names = append(names, string(pp))
		}
	}
	return names
}

// String renders the template, e.g. /api/articles/{slug}.
func (p Path) String() string {
	ss := make([]string, len(p))
	for i, el := range p {
		ss[i] = el.pathElement()
	}
	return path.Join(ss...)
}
