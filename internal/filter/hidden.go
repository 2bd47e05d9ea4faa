package filter

import "strings"

// IsHiddenUnder reports whether path has a dot-prefixed component strictly
// below searchBase. The final component counts; components of the base
// itself do not, so a search rooted inside a dot-directory is not
// self-excluded.
func IsHiddenUnder(path, searchBase string) bool {
	for _, comp := range componentsUnder(path, searchBase) {
		if strings.HasPrefix(comp, ".") {
			return true
		}
	}
	return false
}
