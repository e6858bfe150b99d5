package depset

import (
	"github.com/albertocavalcante/go-depset/specifier"
)

// filterEntries drops excluded and repeated specifiers.
//
// An entry is excluded when the lower-cased base name of its specifier is a
// member of exclude. Repeats are detected by exact specifier string; the
// first occurrence is kept and determines the position.
func filterEntries(entries []Entry, exclude map[string]struct{}) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, excluded := exclude[specifier.BaseName(e.Specifier)]; excluded {
			continue
		}
		if _, dup := seen[e.Specifier]; dup {
			continue
		}
		seen[e.Specifier] = struct{}{}
		out = append(out, e)
	}
	return out
}
