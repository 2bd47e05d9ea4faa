package filter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sfind-dev/sfind/internal/utils"
)

// decision is the tri-state outcome of matching one path against the layered
// ignore sources: no opinion, ignore, or an explicit "!" whitelist.
type decision int

const (
	decisionNone decision = iota
	decisionIgnore
	decisionWhitelist
)

// dirVerdictCacheSize bounds the per-matcher cache of ancestor-directory
// verdicts. Entries are safe to evict: a recomputed verdict is identical.
const dirVerdictCacheSize = 4096

// source is one compiled ignore file, scoped to the directory its patterns
// are relative to.
type source struct {
	base string
	gi   gitignore.GitIgnore
}

// match evaluates the source against an absolute path. Within one ignore
// file the last matching pattern wins, which the library implements; a nil
// or out-of-scope source has no opinion.
func (s *source) match(path string, isDir bool) (dec decision) {
	if s == nil || s.gi == nil {
		return decisionNone
	}
	rel, err := filepath.Rel(s.base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return decisionNone
	}

	// The library has panicked on odd patterns before; a panic here must
	// degrade to "no opinion", not kill the stream.
	defer func() {
		if r := recover(); r != nil {
			dec = decisionNone
		}
	}()

	m := s.gi.Relative(filepath.ToSlash(rel), isDir)
	if m == nil {
		return decisionNone
	}
	if m.Ignore() {
		return decisionIgnore
	}
	return decisionWhitelist
}

// compileSource reads an ignore file and compiles it scoped to base. A
// missing or unreadable file contributes no patterns.
func compileSource(base, file string) *source {
	if file == "" {
		return nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	return &source{base: base, gi: gitignore.New(bytes.NewReader(data), base, nil)}
}

// Matcher is the compiled ignore rule set for a single repository root.
// Sources are consulted in git precedence order: the deepest .gitignore
// between the path and the root wins, then the root .gitignore, then
// .git/info/exclude, then the user's global gitignore, then the sfind
// global ignore file. The first source with a definitive match decides.
type Matcher struct {
	root string
	log  utils.Logger

	// Nested .gitignore sources keyed by directory. A present nil entry
	// records "no ignore file there" so the probe happens once.
	nested map[string]*source

	// Lower-precedence sources, consulted after the nested chain.
	tail []*source

	// Ancestor-directory verdicts. Deep trees can stream a lot of distinct
	// directories, so this one is bounded.
	dirVerdicts *lru.Cache[string, bool]
}

// Ignored reports whether path is excluded by the compiled rules. The path's
// ancestor directories strictly below the repo root are tested first,
// top-down: an ignored directory hides everything beneath it, even entries
// whitelisted deeper down.
func (m *Matcher) Ignored(path string, isDir bool) bool {
	var ancestors []string
	for cur := filepath.Dir(path); isUnder(cur, m.root); cur = filepath.Dir(cur) {
		ancestors = append(ancestors, cur)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if m.dirIgnored(ancestors[i]) {
			m.log.Debug("filter: %q pruned by ignored ancestor %q", path, ancestors[i])
			return true
		}
	}
	return m.decide(path, isDir) == decisionIgnore
}

func (m *Matcher) dirIgnored(dir string) bool {
	if v, hit := m.dirVerdicts.Get(dir); hit {
		return v
	}
	v := m.decide(dir, true) == decisionIgnore
	m.dirVerdicts.Add(dir, v)
	return v
}

func (m *Matcher) decide(path string, isDir bool) decision {
	for cur := filepath.Dir(path); isUnder(cur, m.root); cur = filepath.Dir(cur) {
		if d := m.nestedSource(cur).match(path, isDir); d != decisionNone {
			return d
		}
	}
	for _, s := range m.tail {
		if d := s.match(path, isDir); d != decisionNone {
			return d
		}
	}
	return decisionNone
}

// nestedSource lazily loads the .gitignore living in dir. The per-directory
// result is cached inside the matcher, so compilation cost stays one-time
// per repository regardless of how many results stream through it.
func (m *Matcher) nestedSource(dir string) *source {
	if s, hit := m.nested[dir]; hit {
		return s
	}
	s := compileSource(dir, filepath.Join(dir, ".gitignore"))
	m.nested[dir] = s
	return s
}

// isUnder reports whether path is strictly below dir.
func isUnder(path, dir string) bool {
	if path == dir {
		return false
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Compiler builds and memoizes one Matcher per repository root. Compilation
// reads several ignore files and is the expensive step for a new root; every
// later path in the same repository reuses the cached matcher.
type Compiler struct {
	matchers       map[string]*Matcher
	userIgnoreFile string
	toolIgnoreFile string
	log            utils.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithUserIgnoreFile overrides the global user-level gitignore location.
func WithUserIgnoreFile(path string) CompilerOption {
	return func(c *Compiler) {
		c.userIgnoreFile = path
	}
}

// WithToolIgnoreFile overrides the sfind global ignore file location.
func WithToolIgnoreFile(path string) CompilerOption {
	return func(c *Compiler) {
		c.toolIgnoreFile = path
	}
}

// WithCompilerLogger sets the logger used for debug output.
func WithCompilerLogger(log utils.Logger) CompilerOption {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCompiler creates a compiler with an empty matcher cache. Global ignore
// files default to their XDG locations.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		matchers:       make(map[string]*Matcher),
		userIgnoreFile: configFilePath("git", "ignore"),
		toolIgnoreFile: configFilePath("sfind", "ignore"),
		log:            utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the matcher for root, compiling it on first use.
func (c *Compiler) Get(root string) *Matcher {
	if m, hit := c.matchers[root]; hit {
		return m
	}

	c.log.Debug("filter: compiling ignore matcher for %q", root)
	verdicts, _ := lru.New[string, bool](dirVerdictCacheSize)
	m := &Matcher{
		root:        root,
		log:         c.log,
		nested:      make(map[string]*source),
		dirVerdicts: verdicts,
		tail: []*source{
			compileSource(root, filepath.Join(root, ".gitignore")),
			compileSource(root, filepath.Join(root, ".git", "info", "exclude")),
			compileSource(root, c.userIgnoreFile),
			compileSource(root, c.toolIgnoreFile),
		},
	}
	c.matchers[root] = m
	return m
}

// configFilePath resolves $XDG_CONFIG_HOME/<app>/<name>, falling back to
// ~/.config. Empty when no home directory is known.
func configFilePath(app, name string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, app, name)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", app, name)
}
