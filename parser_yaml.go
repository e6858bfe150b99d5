package depset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlManifestFile mirrors the pyproject.toml layout:
//
//	project:
//	  name: yt-dlp
//	  dependencies: [requests]
//	  optional-dependencies:
//	    default: [brotli]
//	    dev: [pre-commit]
type yamlManifestFile struct {
	Project *struct {
		Name                 *string   `yaml:"name"`
		Dependencies         *[]string `yaml:"dependencies"`
		OptionalDependencies yaml.Node `yaml:"optional-dependencies"`
	} `yaml:"project"`
}

// parseYAML reads a YAML manifest. Group order follows the mapping order.
func parseYAML(content []byte) (*Manifest, error) {
	var doc yamlManifestFile
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML manifest: %w", err)
	}

	project := doc.Project
	if project == nil {
		return nil, missingField("project")
	}
	if project.Name == nil {
		return nil, missingField("project.name")
	}
	if project.Dependencies == nil {
		return nil, missingField("project.dependencies")
	}

	groupsNode := project.OptionalDependencies
	if groupsNode.Kind == 0 || groupsNode.Tag == "!!null" {
		return nil, missingField("project.optional-dependencies")
	}
	if groupsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("project.optional-dependencies: expected a mapping at line %d", groupsNode.Line)
	}

	m := &Manifest{
		Name:                 *project.Name,
		Dependencies:         nonNil(*project.Dependencies),
		OptionalDependencies: make([]Group, 0, len(groupsNode.Content)/2),
	}
	for i := 0; i+1 < len(groupsNode.Content); i += 2 {
		key, value := groupsNode.Content[i], groupsNode.Content[i+1]
		var specs []string
		if err := value.Decode(&specs); err != nil {
			return nil, fmt.Errorf("project.optional-dependencies.%s: %w", key.Value, err)
		}
		m.OptionalDependencies = append(m.OptionalDependencies, Group{
			Name:       key.Value,
			Specifiers: nonNil(specs),
		})
	}
	return m, nil
}
