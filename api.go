// Package depset provides a Go library for computing the set of package
// specifiers to install from a project manifest.
//
// A manifest declares a project name, a flat list of base dependencies, and
// named optional dependency groups. Groups may refer to other groups of the
// same project with the form "<project>[<group>]". A [Request] selects which
// groups to include or exclude, and resolution produces an ordered,
// duplicate-free list of specifiers.
//
// # Overview
//
// The package provides three main components:
//
//   - Parser: reads pyproject.toml, YAML, and Starlark manifests
//   - Resolver: selects, expands, filters, and de-duplicates specifiers
//   - Options: logging and default-group configuration
//
// # Quick Start
//
//	m, err := depset.ParseManifestFile("pyproject.toml")
//	if err != nil {
//	    return err
//	}
//	set, err := depset.Resolve(m, depset.Request{Include: []string{"dev", "test"}})
//	if err != nil {
//	    return err
//	}
//	for _, s := range set.Specifiers() {
//	    fmt.Println(s)
//	}
//
// # Selection Rules
//
// Unless only optional groups are requested, the base dependencies and the
// "default" group come first. With All, every other group follows in
// declaration order; otherwise each included group follows in request order.
// Unknown groups contribute nothing. Exclusions match either a group name
// (for the default group and with All) or the lower-cased base name of any
// specifier, base dependencies included.
//
// # Self-References
//
// A self-reference is expanded exactly one level deep. If the referenced
// group itself contains a self-reference, that inner token is returned as a
// literal specifier.
//
// # Thread Safety
//
// Resolution never mutates its inputs and keeps no state between calls.
// All public types in this package are safe for concurrent use.
package depset

import (
	"fmt"
)

// Resolve computes the dependency set for a manifest and request.
func Resolve(m *Manifest, req Request, opts ...Option) (*ResolvedSet, error) {
	r, err := NewResolver(opts...)
	if err != nil {
		return nil, fmt.Errorf("configure resolver: %w", err)
	}
	return r.Resolve(m, req)
}

// ResolveFile reads a manifest file and computes its dependency set.
// The request is validated before the file is read.
func ResolveFile(path string, req Request, opts ...Option) (*ResolvedSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := ParseManifestFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse manifest file: %w", err)
	}
	return Resolve(m, req, opts...)
}
