// Package specifier provides helpers for inspecting dependency specifier tokens.
//
// A specifier is an opaque string such as "requests>=2.31" or "pytest". The
// helpers in this package never validate specifier syntax; they only extract
// the pieces needed for group expansion and exclusion matching.
//
// # Base Names
//
// The base name of a specifier is its longest leading run of word characters
// (letters, digits, underscore) and hyphens, lower-cased:
//
//	BaseName("Requests>=2.31") == "requests"
//	BaseName("yt-dlp[dev]")    == "yt-dlp"
//
// # Self-References
//
// A project may refer to one of its own optional groups with the form
// "<project>[<group>]". A [SelfReference] matches such tokens for one
// project name.
package specifier

import (
	"regexp"
	"strings"
)

var baseNameRegex = regexp.MustCompile(`^[\p{L}\p{N}_-]+`)

// BaseName returns the lower-cased leading identifier of a specifier.
// Returns an empty string if the specifier does not start with a word
// character or hyphen.
func BaseName(s string) string {
	return strings.ToLower(baseNameRegex.FindString(s))
}

// SelfReference matches specifiers of the form "<project>[<group>]".
// The zero value matches nothing. Create instances with NewSelfReference.
type SelfReference struct {
	project string
	re      *regexp.Regexp
}

// NewSelfReference creates a matcher for self-references of the given project.
// The project name is matched literally and case-sensitively.
func NewSelfReference(project string) SelfReference {
	if project == "" {
		return SelfReference{}
	}
	return SelfReference{
		project: project,
		re:      regexp.MustCompile(`^` + regexp.QuoteMeta(project) + `\[([\p{L}\p{N}_-]+)\]$`),
	}
}

// Match reports whether s is a self-reference and returns the referenced
// group name. The whole token must match.
func (r SelfReference) Match(s string) (group string, ok bool) {
	if r.re == nil {
		return "", false
	}
	m := r.re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Format returns the self-reference token for group.
func (r SelfReference) Format(group string) string {
	return r.project + "[" + group + "]"
}

// Project returns the project name this matcher is bound to.
func (r SelfReference) Project() string {
	return r.project
}
