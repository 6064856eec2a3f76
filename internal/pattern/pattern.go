// Package pattern decides which files of a patch a plugin is
// interested in. Two pattern forms exist: a tail match (path-segment
// suffix equality, e.g. "debian/changelog") and a glob match
// (shell-style, e.g. "debian/patches/*"). Both compare path segments,
// never raw substrings, so "notdebian/changelog" can never satisfy
// "debian/changelog".
package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher holds a plugin's declared patterns. A Matcher with no
// patterns matches nothing: interest must be declared explicitly.
type Matcher struct {
	patterns []string
}

// New builds a Matcher over the given patterns.
func New(patterns ...string) *Matcher {
	return &Matcher{patterns: patterns}
}

// Patterns returns the declared patterns.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// Matches reports whether any declared pattern matches path.
func (m *Matcher) Matches(path string) bool {
	for _, p := range m.patterns {
		if Match(p, path) {
			return true
		}
	}
	return false
}

// Match is a pure, case-sensitive predicate over one pattern and one
// path. Patterns without glob meta-characters use tail matching;
// patterns with them use segment-aware glob matching anchored at any
// segment boundary of the path.
func Match(pattern, path string) bool {
	if pattern == "" || path == "" {
		return false
	}
	if strings.ContainsAny(pattern, "*?[{") {
		return matchGlob(pattern, path)
	}
	return matchTail(pattern, path)
}

func matchTail(pattern, path string) bool {
	want := segments(pattern)
	have := segments(path)
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	tail := have[len(have)-len(want):]
	for i := range want {
		if want[i] != tail[i] {
			return false
		}
	}
	return true
}

// matchGlob tries the pattern against every segment-aligned suffix of
// the path, so "debian/patches/*" matches "pkg/debian/patches/fix.patch"
// but not "notdebian/patches/fix.patch". doublestar keeps `*` within a
// single segment; `**` spans segments.
func matchGlob(pattern string, path string) bool {
	segs := segments(path)
	for i := range segs {
		sub := strings.Join(segs[i:], "/")
		if ok, err := doublestar.Match(pattern, sub); err == nil && ok {
			return true
		}
	}
	return false
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
