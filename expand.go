package depset

import (
	"github.com/albertocavalcante/go-depset/specifier"
)

// groupExpander substitutes self-references inside optional groups.
//
// Expansion is exactly one level deep: a self-reference is replaced by the
// referenced group's raw specifiers, and any self-reference inside those is
// emitted unchanged. Chained references are never followed.
type groupExpander struct {
	ref    specifier.SelfReference
	groups map[string][]string
}

func newGroupExpander(m *Manifest) *groupExpander {
	groups := make(map[string][]string, len(m.OptionalDependencies))
	for _, g := range m.OptionalDependencies {
		if _, exists := groups[g.Name]; !exists {
			groups[g.Name] = g.Specifiers
		}
	}
	return &groupExpander{
		ref:    specifier.NewSelfReference(m.Name),
		groups: groups,
	}
}

// lookup returns the raw specifiers of a group.
func (e *groupExpander) lookup(name string) ([]string, bool) {
	specs, ok := e.groups[name]
	return specs, ok
}

// expand flattens the specifiers of the named group. Self-references to an
// unknown group contribute nothing.
func (e *groupExpander) expand(group string, specs []string) []Entry {
	out := make([]Entry, 0, len(specs))
	for _, s := range specs {
		target, ok := e.ref.Match(s)
		if !ok {
			out = append(out, Entry{Specifier: s, Group: group})
			continue
		}
		for _, inner := range e.groups[target] {
			out = append(out, Entry{Specifier: inner, Group: group, Via: s})
		}
	}
	return out
}
