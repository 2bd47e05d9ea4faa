// Package filter implements the include/exclude decision engine applied to
// every candidate path coming off the search index.
//
// A Classifier layers four rules over each candidate: the built-in exclusion
// set, the hidden-path policy, command-line exclude patterns, and git-style
// ignore files compiled per repository root. Repo-root discovery and matcher
// compilation are memoized so that streams of results sharing ancestor
// directories amortize to cheap string checks.
package filter

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/sfind-dev/sfind/internal/utils"
)

// Config carries the per-run settings of a Classifier.
type Config struct {
	// SearchBase is the absolute directory scoping the search. Hidden and
	// exclusion checks only look at components below it.
	SearchBase string

	// IncludeHidden keeps dotfiles below the search base.
	IncludeHidden bool

	// DisableFiltering bypasses every layer; all candidates pass.
	DisableFiltering bool

	// ExcludePatterns are extra gitignore-syntax patterns from the command
	// line, checked before any filesystem probing.
	ExcludePatterns []string
}

// Classifier decides, per candidate path, whether it should be surfaced.
// It owns the repo-root and matcher caches for one run. Entries are only
// ever inserted, never invalidated; the repository topology is assumed
// stable for the duration of a run. Not safe for concurrent use.
type Classifier struct {
	cfg      Config
	excludes *ignore.GitIgnore
	roots    *RootResolver
	matchers *Compiler
	log      utils.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for debug output.
func WithLogger(log utils.Logger) Option {
	return func(c *Classifier) {
		if log != nil {
			c.log = log
		}
	}
}

// WithResolver replaces the default repo-root resolver.
func WithResolver(r *RootResolver) Option {
	return func(c *Classifier) {
		if r != nil {
			c.roots = r
		}
	}
}

// WithCompiler replaces the default ignore-matcher compiler.
func WithCompiler(mc *Compiler) Option {
	return func(c *Classifier) {
		if mc != nil {
			c.matchers = mc
		}
	}
}

// New creates a Classifier owning fresh caches.
func New(cfg Config, opts ...Option) *Classifier {
	c := &Classifier{cfg: cfg, log: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.roots == nil {
		c.roots = NewRootResolver(WithResolverLogger(c.log))
	}
	if c.matchers == nil {
		c.matchers = NewCompiler(WithCompilerLogger(c.log))
	}
	if len(cfg.ExcludePatterns) > 0 {
		c.excludes = ignore.CompileIgnoreLines(cfg.ExcludePatterns...)
	}
	return c
}

// ShouldInclude reports whether path survives every filtering layer. Checks
// run cheapest first: pure string rules, then repo-root discovery, then the
// compiled matcher. Candidates outside any repository only see the string
// rules.
func (c *Classifier) ShouldInclude(path string, isDir bool) bool {
	if c.cfg.DisableFiltering {
		return true
	}
	if c.matchesExcludePattern(path, isDir) {
		c.log.Debug("filter: %q excluded by command-line pattern", path)
		return false
	}
	if IsDefaultExcluded(path, c.cfg.SearchBase) {
		c.log.Debug("filter: %q excluded by default set", path)
		return false
	}
	if !c.cfg.IncludeHidden && IsHiddenUnder(path, c.cfg.SearchBase) {
		c.log.Debug("filter: %q excluded as hidden", path)
		return false
	}

	root, found := c.roots.Resolve(path)
	if !found {
		return true
	}
	if c.matchers.Get(root).Ignored(path, isDir) {
		c.log.Debug("filter: %q excluded by ignore rules of %q", path, root)
		return false
	}
	return true
}

// ClassifyPath stats the path without following symlinks and applies
// ShouldInclude. A stat failure is treated as a regular file; the candidate
// may have vanished since the index saw it, and that is for the consumer to
// notice, not a reason to drop the stream.
func (c *Classifier) ClassifyPath(path string) bool {
	isDir := false
	if fi, err := os.Lstat(path); err == nil {
		isDir = fi.IsDir()
	}
	return c.ShouldInclude(path, isDir)
}

func (c *Classifier) matchesExcludePattern(path string, isDir bool) bool {
	if c.excludes == nil {
		return false
	}
	rel := path
	if r, err := filepath.Rel(c.cfg.SearchBase, path); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}
	rel = filepath.ToSlash(rel)
	if isDir && !strings.HasSuffix(rel, "/") {
		rel += "/"
	}
	return c.excludes.MatchesPath(rel)
}
