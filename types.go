package depset

import (
	"fmt"
)

// DefaultGroup is the name of the optional dependency group that is installed
// together with the base dependencies unless excluded.
const DefaultGroup = "default"

// Manifest represents the dependency declarations of a project file.
// It contains the project's name, its base dependencies, and its optional
// dependency groups in declaration order.
type Manifest struct {
	// Name is the project name as declared in the manifest. Self-references
	// take the form "<Name>[<group>]".
	Name string `json:"name" yaml:"name"`

	// Dependencies lists the base (required) specifiers.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// OptionalDependencies lists the optional dependency groups in the order
	// they were declared.
	OptionalDependencies []Group `json:"optional_dependencies" yaml:"optional_dependencies"`
}

// Group is a named, ordered bundle of optional specifiers.
type Group struct {
	// Name is the group name (e.g. "dev", "test", "default").
	Name string `json:"name" yaml:"name"`

	// Specifiers are the raw group contents. A specifier may be a
	// self-reference to another group of the same project.
	Specifiers []string `json:"specifiers" yaml:"specifiers"`
}

// Group looks up an optional dependency group by name.
func (m *Manifest) Group(name string) ([]string, bool) {
	for _, g := range m.OptionalDependencies {
		if g.Name == name {
			return g.Specifiers, true
		}
	}
	return nil, false
}

// GroupNames returns the optional dependency group names in declaration order.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.OptionalDependencies))
	for _, g := range m.OptionalDependencies {
		names = append(names, g.Name)
	}
	return names
}

// Validate checks the manifest for structural problems that would make group
// lookups ambiguous.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.OptionalDependencies))
	for _, g := range m.OptionalDependencies {
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// Request describes which parts of a manifest should be selected.
type Request struct {
	// Exclude holds group names and/or specifier base names to leave out.
	// Only membership matters.
	Exclude []string `json:"exclude,omitempty"`

	// Include lists optional groups to add, in order. Repeated names are
	// processed again without effect on the result.
	Include []string `json:"include,omitempty"`

	// All selects every optional group except the default group.
	All bool `json:"all,omitempty"`

	// OnlyOptional skips the base dependencies and the default group.
	OnlyOptional bool `json:"only_optional,omitempty"`
}

// Validate reports whether the request is well-formed.
// All and OnlyOptional cannot be combined.
func (r Request) Validate() error {
	if r.All && r.OnlyOptional {
		return ErrIncompatibleSelection
	}
	return nil
}

func (r Request) excludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Exclude))
	for _, e := range r.Exclude {
		set[e] = struct{}{}
	}
	return set
}

// ResolvedSet contains the final, ordered, duplicate-free specifier list.
type ResolvedSet struct {
	// Entries holds the resolved specifiers in order of first discovery.
	Entries []Entry `json:"entries" yaml:"entries"`

	// Warnings contains non-fatal advisories raised during resolution.
	// For example, an only-optional request without any included group.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Entry is a single resolved specifier together with where it came from.
type Entry struct {
	// Specifier is the dependency token as written in the manifest.
	Specifier string `json:"specifier" yaml:"specifier"`

	// Group is the optional group the specifier was selected through.
	// Empty for base dependencies.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// Via is the self-reference token that spliced the specifier in.
	// Empty when the specifier was listed directly.
	Via string `json:"via,omitempty" yaml:"via,omitempty"`
}

// Specifiers returns the resolved specifier strings in order.
func (s *ResolvedSet) Specifiers() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Specifier
	}
	return out
}

// Len returns the number of resolved specifiers.
func (s *ResolvedSet) Len() int {
	return len(s.Entries)
}
