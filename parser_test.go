package depset

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const pyprojectContent = `[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[project]
name = "yt-dlp"
dependencies = []

[project.optional-dependencies]
default = [
    "brotli; implementation_name=='cpython'",
    "certifi",
    "requests>=2.32.2,<3",
]
curl-cffi = [
    "curl-cffi>=0.5.10,!=0.6.*,<0.7.2; implementation_name=='cpython'",
]
secretstorage = [
    "cffi",
    "secretstorage",
]
build = [
    "build",
    "hatchling",
]
dev = [
    "pre-commit",
    "yt-dlp[static-analysis]",
    "yt-dlp[test]",
]
static-analysis = [
    "autopep8~=2.0",
    "ruff~=0.11.0",
]
test = [
    "pytest~=8.1",
]
`

func groupNames(m *Manifest) []string {
	return m.GroupNames()
}

func TestParseTOML(t *testing.T) {
	m, err := ParseManifestContent(FormatTOML, []byte(pyprojectContent))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}

	if m.Name != "yt-dlp" {
		t.Errorf("Name = %q, want yt-dlp", m.Name)
	}
	if m.Dependencies == nil || len(m.Dependencies) != 0 {
		t.Errorf("Dependencies = %#v, want empty non-nil slice", m.Dependencies)
	}

	wantOrder := []string{"default", "curl-cffi", "secretstorage", "build", "dev", "static-analysis", "test"}
	if got := groupNames(m); !slices.Equal(got, wantOrder) {
		t.Errorf("group order = %v, want %v", got, wantOrder)
	}

	dev, ok := m.Group("dev")
	if !ok {
		t.Fatal("Group(dev) not found")
	}
	wantDev := []string{"pre-commit", "yt-dlp[static-analysis]", "yt-dlp[test]"}
	if !slices.Equal(dev, wantDev) {
		t.Errorf("Group(dev) = %v, want %v", dev, wantDev)
	}
}

func TestParseTOMLInlineGroups(t *testing.T) {
	content := `[project]
name = "p"
dependencies = ["a"]
optional-dependencies = { zeta = ["z"], alpha = ["x"] }
`
	m, err := ParseManifestContent(FormatTOML, []byte(content))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}
	if got := groupNames(m); !slices.Equal(got, []string{"zeta", "alpha"}) {
		t.Errorf("group order = %v, want [zeta alpha]", got)
	}
}

func TestParseTOMLMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "no project table",
			content:   "[tool.ruff]\nline-length = 120\n",
			wantField: "project",
		},
		{
			name:      "no name",
			content:   "[project]\ndependencies = []\n[project.optional-dependencies]\n",
			wantField: "project.name",
		},
		{
			name:      "no dependencies",
			content:   "[project]\nname = \"p\"\n[project.optional-dependencies]\ndev = []\n",
			wantField: "project.dependencies",
		},
		{
			name:      "no optional dependencies",
			content:   "[project]\nname = \"p\"\ndependencies = []\n",
			wantField: "project.optional-dependencies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifestContent(FormatTOML, []byte(tt.content))
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("error = %v, want ErrMissingField", err)
			}
			if !strings.HasSuffix(err.Error(), tt.wantField) {
				t.Errorf("error = %q, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestParseTOMLEmptyOptionalTable(t *testing.T) {
	content := "[project]\nname = \"p\"\ndependencies = [\"a\"]\n\n[project.optional-dependencies]\n"
	m, err := ParseManifestContent(FormatTOML, []byte(content))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}
	if len(m.OptionalDependencies) != 0 {
		t.Errorf("OptionalDependencies = %v, want none", m.OptionalDependencies)
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	_, err := ParseManifestContent(FormatTOML, []byte("[project\nname ="))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrMissingField) {
		t.Errorf("syntax error reported as missing field: %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	content := `project:
  name: yt-dlp
  dependencies:
    - dep1
  optional-dependencies:
    test: [test1, "yt-dlp[dev]"]
    default: [opt1]
    dev:
      - dev1
      - dev2
    empty: []
`
	m, err := ParseManifestContent(FormatYAML, []byte(content))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}

	if m.Name != "yt-dlp" {
		t.Errorf("Name = %q, want yt-dlp", m.Name)
	}
	if !slices.Equal(m.Dependencies, []string{"dep1"}) {
		t.Errorf("Dependencies = %v, want [dep1]", m.Dependencies)
	}
	if got := groupNames(m); !slices.Equal(got, []string{"test", "default", "dev", "empty"}) {
		t.Errorf("group order = %v", got)
	}
	if test, _ := m.Group("test"); !slices.Equal(test, []string{"test1", "yt-dlp[dev]"}) {
		t.Errorf("Group(test) = %v", test)
	}
	if empty, ok := m.Group("empty"); !ok || empty == nil || len(empty) != 0 {
		t.Errorf("Group(empty) = %#v, %v", empty, ok)
	}
}

func TestParseYAMLMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"no project", "name: p\n", "project"},
		{"no name", "project:\n  dependencies: []\n  optional-dependencies: {}\n", "project.name"},
		{"no dependencies", "project:\n  name: p\n  optional-dependencies: {}\n", "project.dependencies"},
		{"null dependencies", "project:\n  name: p\n  dependencies:\n  optional-dependencies: {}\n", "project.dependencies"},
		{"no optional dependencies", "project:\n  name: p\n  dependencies: []\n", "project.optional-dependencies"},
		{"null optional dependencies", "project:\n  name: p\n  dependencies: []\n  optional-dependencies:\n", "project.optional-dependencies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifestContent(FormatYAML, []byte(tt.content))
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("error = %v, want ErrMissingField", err)
			}
			if !strings.HasSuffix(err.Error(), tt.wantField) {
				t.Errorf("error = %q, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestParseYAMLDuplicateGroup(t *testing.T) {
	content := "project:\n  name: p\n  dependencies: []\n  optional-dependencies:\n    dev: [a]\n    dev: [b]\n"
	if _, err := ParseManifestContent(FormatYAML, []byte(content)); err == nil {
		t.Fatal("expected error for duplicate group")
	}
}

func TestParseYAMLGroupNotMapping(t *testing.T) {
	content := "project:\n  name: p\n  dependencies: []\n  optional-dependencies: [a, b]\n"
	_, err := ParseManifestContent(FormatYAML, []byte(content))
	if err == nil || !strings.Contains(err.Error(), "expected a mapping") {
		t.Errorf("error = %v, want mapping error", err)
	}
}

func TestParseStarlark(t *testing.T) {
	content := `# Project manifest
project(
    name = "yt-dlp",
    dependencies = ["dep1"],
)

optional_dependencies(name = "default", deps = ["opt1"])
optional_dependencies(name = "test", deps = ["test1", "yt-dlp[dev]"])
optional_dependencies("dev", deps = ["dev1", "dev2"])
`
	m, err := ParseManifestContent(FormatStarlark, []byte(content))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}

	if m.Name != "yt-dlp" {
		t.Errorf("Name = %q, want yt-dlp", m.Name)
	}
	if !slices.Equal(m.Dependencies, []string{"dep1"}) {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
	if got := groupNames(m); !slices.Equal(got, []string{"default", "test", "dev"}) {
		t.Errorf("group order = %v", got)
	}
	if dev, _ := m.Group("dev"); !slices.Equal(dev, []string{"dev1", "dev2"}) {
		t.Errorf("Group(dev) = %v", dev)
	}
}

func TestParseStarlarkErrors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantMissing bool
		wantErr     string
	}{
		{
			name:        "no project",
			content:     `optional_dependencies(name = "dev", deps = [])`,
			wantMissing: true,
			wantErr:     "project",
		},
		{
			name:        "no dependencies",
			content:     `project(name = "p")`,
			wantMissing: true,
			wantErr:     "project.dependencies",
		},
		{
			name:        "no name",
			content:     `project(dependencies = [])`,
			wantMissing: true,
			wantErr:     "project.name",
		},
		{
			name:    "project twice",
			content: "project(name = \"p\", dependencies = [])\nproject(name = \"q\", dependencies = [])",
			wantErr: "more than once",
		},
		{
			name:    "unnamed group",
			content: "project(name = \"p\", dependencies = [])\noptional_dependencies(deps = [])",
			wantErr: "without a name",
		},
		{
			name:    "duplicate group",
			content: "project(name = \"p\", dependencies = [])\noptional_dependencies(name = \"a\")\noptional_dependencies(name = \"a\")",
			wantErr: "duplicate",
		},
		{
			name:    "syntax error",
			content: `project(name = `,
			wantErr: "failed to parse Starlark manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifestContent(FormatStarlark, []byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrMissingField) != tt.wantMissing {
				t.Errorf("errors.Is(ErrMissingField) = %v, want %v (err = %v)", !tt.wantMissing, tt.wantMissing, err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseStarlarkNoGroups(t *testing.T) {
	m, err := ParseManifestContent(FormatStarlark, []byte(`project(name = "p", dependencies = ["a"])`))
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}
	if m.OptionalDependencies == nil || len(m.OptionalDependencies) != 0 {
		t.Errorf("OptionalDependencies = %#v, want empty non-nil", m.OptionalDependencies)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"pyproject.toml", FormatTOML, false},
		{"/a/b/PYPROJECT.TOML", FormatTOML, false},
		{"deps.yaml", FormatYAML, false},
		{"deps.yml", FormatYAML, false},
		{"project.bzl", FormatStarlark, false},
		{"DEPS.bazel", FormatStarlark, false},
		{"deps.star", FormatStarlark, false},
		{"requirements.txt", "", true},
		{"Makefile", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.filename, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DetectFormat(%q) = (%q, %v), want %q", tt.filename, got, err, tt.want)
			}
		})
	}
}

func TestParseManifestContentUnknownFormat(t *testing.T) {
	_, err := ParseManifestContent(Format("ini"), []byte(""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	if err := os.WriteFile(path, []byte(pyprojectContent), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := ParseManifestFile(path)
	if err != nil {
		t.Fatalf("ParseManifestFile() error = %v", err)
	}
	if m.Name != "yt-dlp" || len(m.OptionalDependencies) != 7 {
		t.Errorf("ParseManifestFile() = %+v", m)
	}
}

func TestParseManifestFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		_, err := ParseManifestFile(filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("missing field names file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		if err := os.WriteFile(path, []byte("[project]\nname = \"p\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := ParseManifestFile(path)
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("error = %v, want ErrMissingField", err)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error = %q, want file path", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ParseManifestFile(filepath.Join(dir, "setup.cfg"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})
}
