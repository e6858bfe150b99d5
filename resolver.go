package depset

import (
	"fmt"
	"log/slog"
	"slices"
)

// AdvisoryOnlyOptionalWithoutInclude is reported when only optional groups are
// requested but no group is included, so the request selects nothing.
const AdvisoryOnlyOptionalWithoutInclude = "only-optional has no effect without specifying groups to include; " +
	"select all groups instead to include every optional dependency group"

// Resolver computes dependency sets from a manifest and a selection request.
//
// Resolution proceeds in four phases:
//  1. Base and default: the base dependencies followed by the default group,
//     unless only optional groups were requested or the default group is
//     excluded by name.
//  2. Group selection: every non-default group in declaration order when all
//     groups are requested, otherwise each included group in request order.
//  3. Self-reference substitution: applied to each group as it is appended,
//     exactly one level deep.
//  4. Exclusion and de-duplication: specifiers whose base name is excluded are
//     dropped, then repeated specifier strings; first occurrence wins.
//
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	cfg *resolverConfig
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ...Option) (*Resolver, error) {
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{cfg: cfg}, nil
}

// Resolve computes the ordered, duplicate-free specifier set for a request.
// The manifest is never modified.
func (r *Resolver) Resolve(m *Manifest, req Request) (*ResolvedSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: manifest is nil", ErrMissingField)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	log := r.cfg.log().With("project", m.Name)
	exclude := req.excludeSet()
	expander := newGroupExpander(m)

	var warnings []string
	candidates := r.baseAndDefault(m, expander, exclude, req, log)

	if req.All {
		candidates = append(candidates, r.allGroups(m, expander, exclude, log)...)
	} else {
		if req.OnlyOptional && len(req.Include) == 0 {
			log.Debug("request selects no groups", "advisory", AdvisoryOnlyOptionalWithoutInclude)
			warnings = append(warnings, AdvisoryOnlyOptionalWithoutInclude)
		}
		candidates = append(candidates, r.includedGroups(expander, req.Include, log)...)
	}

	entries := filterEntries(candidates, exclude)
	log.Debug("resolved dependency set",
		"candidates", len(candidates),
		"resolved", len(entries),
		"excluded", len(req.Exclude))

	return &ResolvedSet{Entries: entries, Warnings: warnings}, nil
}

// baseAndDefault runs phase 1.
func (r *Resolver) baseAndDefault(m *Manifest, expander *groupExpander, exclude map[string]struct{}, req Request, log *slog.Logger) []Entry {
	if req.OnlyOptional {
		log.Debug("skipping base dependencies and default group")
		return nil
	}

	out := make([]Entry, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		out = append(out, Entry{Specifier: dep})
	}

	defaultGroup := r.cfg.defaultGroup
	if _, excluded := exclude[defaultGroup]; excluded {
		log.Debug("default group excluded", "group", defaultGroup)
		return out
	}
	if specs, ok := expander.lookup(defaultGroup); ok {
		out = append(out, expander.expand(defaultGroup, specs)...)
	}
	return out
}

// allGroups runs phase 2 for a request that selects every group.
func (r *Resolver) allGroups(m *Manifest, expander *groupExpander, exclude map[string]struct{}, log *slog.Logger) []Entry {
	var out []Entry
	for _, g := range m.OptionalDependencies {
		if g.Name == r.cfg.defaultGroup {
			continue
		}
		if _, excluded := exclude[g.Name]; excluded {
			log.Debug("group excluded", "group", g.Name)
			continue
		}
		out = append(out, expander.expand(g.Name, g.Specifiers)...)
	}
	return out
}

// includedGroups runs phase 2 for explicitly included groups. Unknown group
// names contribute nothing.
func (r *Resolver) includedGroups(expander *groupExpander, include []string, log *slog.Logger) []Entry {
	var out []Entry
	for _, name := range include {
		specs, ok := expander.lookup(name)
		if !ok {
			log.Debug("ignoring unknown group", "group", name)
			continue
		}
		out = append(out, expander.expand(name, specs)...)
	}
	return out
}

// Groups returns the names of the groups a request would draw specifiers
// from, in the order they are consulted. Exclusions by specifier base name
// are not reflected.
func (r *Resolver) Groups(m *Manifest, req Request) []string {
	if m == nil {
		return nil
	}
	exclude := req.excludeSet()
	expander := newGroupExpander(m)

	var names []string
	if !req.OnlyOptional {
		if _, excluded := exclude[r.cfg.defaultGroup]; !excluded {
			if _, ok := expander.lookup(r.cfg.defaultGroup); ok {
				names = append(names, r.cfg.defaultGroup)
			}
		}
	}
	if req.All {
		for _, g := range m.OptionalDependencies {
			if g.Name == r.cfg.defaultGroup {
				continue
			}
			if _, excluded := exclude[g.Name]; excluded {
				continue
			}
			names = append(names, g.Name)
		}
		return names
	}
	for _, name := range req.Include {
		if _, ok := expander.lookup(name); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
