package filter

import (
	"path/filepath"
	"strings"
)

// defaultExcludes lists directory names that are skipped no matter what the
// ignore files say. The list is fixed; use -no-ignore to bypass it.
var defaultExcludes = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"__pycache__":  {},
	".tox":         {},
	"vendor":       {},
	"Pods":         {},
	".build":       {},
	"DerivedData":  {},
	".DS_Store":    {},
}

// IsDefaultExcluded reports whether any path component is on the built-in
// exclusion list. Components belonging to searchBase itself are not tested,
// so searching inside a directory that happens to be named "build" still
// yields results.
func IsDefaultExcluded(path, searchBase string) bool {
	for _, comp := range componentsUnder(path, searchBase) {
		if _, ok := defaultExcludes[comp]; ok {
			return true
		}
	}
	return false
}

// componentsUnder returns the path components below base when path lies
// under it, and every component otherwise. "." and ".." never appear in the
// result.
func componentsUnder(path, base string) []string {
	target := path
	if base != "" {
		if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
			target = rel
		}
	}

	raw := strings.Split(filepath.ToSlash(filepath.Clean(target)), "/")
	comps := raw[:0]
	for _, c := range raw {
		if c == "" || c == "." || c == ".." {
			continue
		}
		comps = append(comps, c)
	}
	return comps
}
