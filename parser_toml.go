package depset

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// pyprojectFile is the subset of pyproject.toml read by the TOML reader.
type pyprojectFile struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// parseTOML reads the [project] table of a pyproject.toml file.
func parseTOML(content []byte) (*Manifest, error) {
	var doc pyprojectFile
	md, err := toml.Decode(string(content), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML manifest: %w", err)
	}

	if !md.IsDefined("project") {
		return nil, missingField("project")
	}
	for _, field := range []string{"name", "dependencies", "optional-dependencies"} {
		if !md.IsDefined("project", field) {
			return nil, missingField("project." + field)
		}
	}

	m := &Manifest{
		Name:                 doc.Project.Name,
		Dependencies:         nonNil(doc.Project.Dependencies),
		OptionalDependencies: make([]Group, 0, len(doc.Project.OptionalDependencies)),
	}
	for _, name := range tomlGroupOrder(md, doc.Project.OptionalDependencies) {
		m.OptionalDependencies = append(m.OptionalDependencies, Group{
			Name:       name,
			Specifiers: nonNil(doc.Project.OptionalDependencies[name]),
		})
	}
	return m, nil
}

// tomlGroupOrder returns the optional group names in the order their keys
// appear in the document. Groups the metadata does not report are appended
// in lexical order.
func tomlGroupOrder(md toml.MetaData, groups map[string][]string) []string {
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, key := range md.Keys() {
		if len(key) != 3 || key[0] != "project" || key[1] != "optional-dependencies" {
			continue
		}
		name := key[2]
		if _, ok := groups[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}

	var rest []string
	for name := range groups {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
