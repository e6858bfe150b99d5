package depset

import (
	"errors"
	"fmt"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-depset/internal/buildutil"
)

// parseStarlark reads a Starlark manifest:
//
//	project(
//	    name = "yt-dlp",
//	    dependencies = ["requests>=2.32.2"],
//	)
//
//	optional_dependencies(name = "default", deps = ["brotli"])
//	optional_dependencies(name = "test", deps = ["pytest", "yt-dlp[dev]"])
//
// Groups keep the order of their optional_dependencies() calls. A file
// without optional_dependencies() calls declares an empty group mapping.
func parseStarlark(filename string, content []byte) (*Manifest, error) {
	f, err := build.ParseBzl(filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Starlark manifest: %w", err)
	}

	var (
		m       *Manifest
		groups  []Group
		unnamed int
	)
	for _, call := range buildutil.Calls(f) {
		switch buildutil.FuncName(call) {
		case "project":
			if m != nil {
				return nil, errors.New("project() declared more than once")
			}
			if !buildutil.Has(call, "name") {
				return nil, missingField("project.name")
			}
			if !buildutil.Has(call, "dependencies") {
				return nil, missingField("project.dependencies")
			}
			m = &Manifest{
				Name:         buildutil.String(call, "name"),
				Dependencies: nonNil(buildutil.StringList(call, "dependencies")),
			}

		case "optional_dependencies":
			name := buildutil.String(call, "name")
			if name == "" {
				name = buildutil.String(call, "")
			}
			if name == "" {
				unnamed++
				continue
			}
			groups = append(groups, Group{
				Name:       name,
				Specifiers: nonNil(buildutil.StringList(call, "deps")),
			})
		}
	}

	if m == nil {
		return nil, missingField("project")
	}
	if unnamed > 0 {
		return nil, fmt.Errorf("%d optional_dependencies() call(s) without a name", unnamed)
	}
	m.OptionalDependencies = nonNilGroups(groups)
	return m, nil
}

func nonNilGroups(g []Group) []Group {
	if g == nil {
		return []Group{}
	}
	return g
}
