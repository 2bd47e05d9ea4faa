package filter

import (
	"os"
	"path/filepath"

	"github.com/sfind-dev/sfind/internal/utils"
)

// rootEntry distinguishes "resolved to a root" from "resolved to no repo".
// Both outcomes are cached for the lifetime of the resolver.
type rootEntry struct {
	root  string
	found bool
}

// RootResolver locates the nearest ancestor directory that is a git
// repository root, memoized per queried parent directory. Sibling results
// share a parent and therefore a cache entry, which is where most of the
// hits come from under streaming workloads.
type RootResolver struct {
	probe func(dir string) bool
	cache map[string]rootEntry
	log   utils.Logger
}

// ResolverOption configures a RootResolver.
type ResolverOption func(*RootResolver)

// WithProbe replaces the repository-marker probe. Used by tests to count
// filesystem accesses.
func WithProbe(fn func(dir string) bool) ResolverOption {
	return func(r *RootResolver) {
		if fn != nil {
			r.probe = fn
		}
	}
}

// WithResolverLogger sets the logger used for debug output.
func WithResolverLogger(log utils.Logger) ResolverOption {
	return func(r *RootResolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRootResolver creates a resolver with an empty cache.
func NewRootResolver(opts ...ResolverOption) *RootResolver {
	r := &RootResolver{
		probe: hasRepoMarker,
		cache: make(map[string]rootEntry),
		log:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the repository root governing path. The verdict is keyed
// by the path's parent directory and memoized under that key only, not under
// every ancestor visited: re-walking upward is cheap compared to compiling a
// matcher, and single-key bookkeeping keeps the cache simple.
func (r *RootResolver) Resolve(path string) (string, bool) {
	parent := filepath.Dir(path)
	if e, hit := r.cache[parent]; hit {
		return e.root, e.found
	}

	cur := parent
	for {
		if r.probe(cur) {
			r.log.Debug("filter: repo root for %q is %q", parent, cur)
			r.cache[parent] = rootEntry{root: cur, found: true}
			return cur, true
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}

	r.log.Debug("filter: no repo root above %q", parent)
	r.cache[parent] = rootEntry{}
	return "", false
}

// hasRepoMarker reports whether dir is a repository root. The marker is a
// regular .git/HEAD file: a bare .git directory without HEAD is not a
// repository, and any stat failure counts as "marker absent".
func hasRepoMarker(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, ".git", "HEAD"))
	return err == nil && fi.Mode().IsRegular()
}
