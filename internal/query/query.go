// Package query builds Spotlight query plans for mdfind.
package query

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Plan describes one mdfind invocation plus an optional client-side
// post-filter applied to surviving candidates.
type Plan struct {
	Args []string
	Post *NameMatch
}

// NameMatch re-checks candidate basenames when the index query is looser
// than the requested semantics. mdfind -name is case-insensitive, so an
// uppercase pattern needs a case-sensitive pass on our side.
type NameMatch struct {
	Needle string
}

// Matches reports whether the basename of path contains the needle.
func (m *NameMatch) Matches(path string) bool {
	return strings.Contains(filepath.Base(path), m.Needle)
}

// BuildPlan assembles the mdfind argument list for pattern under base. An
// empty pattern lists everything. Plain substrings take the -name fast path,
// which has much lower fixed overhead than a predicate query; globs and the
// empty pattern use a kMDItemFSName predicate. Matching is smart-case:
// case-insensitive unless the pattern contains an uppercase character.
func BuildPlan(base, pattern string) Plan {
	// Always request NUL-separated output so paths containing newlines
	// survive parsing.
	args := []string{"-0", "-onlyin", base}

	switch {
	case pattern == "":
		// -name does not accept a bare "*" reliably; use a predicate.
		return Plan{Args: append(args, buildPredicate(""))}
	case isGlob(pattern):
		return Plan{Args: append(args, buildPredicate(pattern))}
	default:
		if avoidNameFastPath(base) {
			return Plan{Args: append(args, buildPredicate(pattern))}
		}
		args = append(args, "-name", pattern)
		var post *NameMatch
		if hasUppercase(pattern) {
			post = &NameMatch{Needle: pattern}
		}
		return Plan{Args: args, Post: post}
	}
}

// avoidNameFastPath reports whether base is one of the temp-like locations
// where mdfind -name is known to return nothing even though a scoped
// predicate query works. Correctness beats speed there.
func avoidNameFastPath(base string) bool {
	return strings.HasPrefix(base, "/var/folders") ||
		strings.HasPrefix(base, "/private/var/folders") ||
		strings.HasPrefix(base, "/tmp") ||
		strings.HasPrefix(base, "/private/tmp")
}

// buildPredicate renders a kMDItemFSName comparison. An empty pattern
// matches everything; substrings are wrapped in wildcards.
func buildPredicate(pattern string) string {
	pat := "*"
	switch {
	case pattern == "":
	case isGlob(pattern):
		pat = pattern
	default:
		pat = "*" + pattern + "*"
	}

	// Escaping is done by hand: %q would re-escape the backslashes.
	q := `kMDItemFSName == "` + escapeQueryString(pat) + `"`
	if pattern != "" && !hasUppercase(pattern) {
		q += "c"
	}
	return q
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

func hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

// escapeQueryString escapes the two characters Spotlight's string literal
// syntax cares about.
func escapeQueryString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
