package depset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultManifestFile is the manifest read when no path is given.
const DefaultManifestFile = "pyproject.toml"

// Format identifies a manifest serialization.
type Format string

const (
	// FormatTOML is a pyproject.toml style manifest with a [project] table.
	FormatTOML Format = "toml"

	// FormatYAML mirrors the TOML layout under a top-level "project" key.
	FormatYAML Format = "yaml"

	// FormatStarlark declares project() and optional_dependencies() calls.
	FormatStarlark Format = "starlark"
)

// DetectFormat infers the manifest format from a file name.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".bzl", ".bazel", ".star":
		return FormatStarlark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// ParseManifestFile reads and parses a manifest file from disk.
// The format is chosen from the file extension.
func ParseManifestFile(filename string) (*Manifest, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := parseManifest(format, filepath.Base(filename), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseManifestContent parses manifest content in the given format.
func ParseManifestContent(format Format, content []byte) (*Manifest, error) {
	return parseManifest(format, "", content)
}

func parseManifest(format Format, filename string, content []byte) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch format {
	case FormatTOML:
		m, err = parseTOML(content)
	case FormatYAML:
		m, err = parseYAML(content)
	case FormatStarlark:
		if filename == "" {
			filename = "project.bzl"
		}
		m, err = parseStarlark(filename, content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func missingField(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}
