package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCompiler isolates the compiler from any global ignore files on the
// machine running the tests.
func newTestCompiler(opts ...CompilerOption) *Compiler {
	base := []CompilerOption{WithUserIgnoreFile(""), WithToolIgnoreFile("")}
	return NewCompiler(append(base, opts...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMatcherRootGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")

	m := newTestCompiler().Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "app.log"), false))
	assert.True(t, m.Ignored(filepath.Join(root, "sub", "deep.log"), false))
	assert.False(t, m.Ignored(filepath.Join(root, "app.go"), false))
}

func TestMatcherNestedScopedToSubtree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "*.log\n")

	m := newTestCompiler().Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "sub", "app.log"), false),
		"nested pattern should apply inside its own subtree")
	assert.False(t, m.Ignored(filepath.Join(root, "other", "app.log"), false),
		"nested pattern must not leak into sibling subtrees")
	assert.False(t, m.Ignored(filepath.Join(root, "app.log"), false),
		"nested pattern must not apply above its directory")
}

func TestMatcherNestedOverridesRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "keep.txt\n")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "!keep.txt\n")

	m := newTestCompiler().Get(root)
	assert.False(t, m.Ignored(filepath.Join(root, "sub", "keep.txt"), false),
		"deeper .gitignore wins")
	assert.True(t, m.Ignored(filepath.Join(root, "keep.txt"), false))
}

func TestMatcherInfoExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "info", "exclude"), "scratch/\n")

	m := newTestCompiler().Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "scratch", "notes.txt"), false),
		"entries under an excluded directory are pruned")
	assert.True(t, m.Ignored(filepath.Join(root, "scratch"), true))
	assert.False(t, m.Ignored(filepath.Join(root, "kept", "notes.txt"), false))
}

func TestMatcherGlobalUserIgnoreLowestPrecedence(t *testing.T) {
	root := t.TempDir()
	globalFile := filepath.Join(t.TempDir(), "ignore")
	writeFile(t, globalFile, "*.bak\n")
	writeFile(t, filepath.Join(root, ".gitignore"), "!keep.bak\n")

	m := newTestCompiler(WithUserIgnoreFile(globalFile)).Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "old.bak"), false))
	assert.False(t, m.Ignored(filepath.Join(root, "keep.bak"), false),
		"repo whitelist overrides the global ignore")
}

func TestMatcherToolIgnoreFile(t *testing.T) {
	root := t.TempDir()
	toolFile := filepath.Join(t.TempDir(), "ignore")
	writeFile(t, toolFile, "*.tmp\n")

	m := newTestCompiler(WithToolIgnoreFile(toolFile)).Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "x.tmp"), false))
	assert.False(t, m.Ignored(filepath.Join(root, "x.txt"), false))
}

func TestMatcherIgnoredDirPrunesWhitelistedLeaf(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "ignored_dir/\n")
	writeFile(t, filepath.Join(root, "ignored_dir", ".gitignore"), "!keep.ts\n")

	m := newTestCompiler().Get(root)
	assert.True(t, m.Ignored(filepath.Join(root, "ignored_dir", "keep.ts"), false),
		"an ignored ancestor hides everything beneath it")
}

func TestMatcherUnignoreChainRestoresLeaf(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"),
		"ignored_dir/\n!ignored_dir/\nignored_dir/*\n!ignored_dir/keep.ts\n")

	m := newTestCompiler().Get(root)
	assert.False(t, m.Ignored(filepath.Join(root, "ignored_dir", "keep.ts"), false))
	assert.True(t, m.Ignored(filepath.Join(root, "ignored_dir", "junk.ts"), false))
}

func TestMatcherMemoizedPerRoot(t *testing.T) {
	root := t.TempDir()
	c := newTestCompiler()
	assert.Same(t, c.Get(root), c.Get(root))
}

func TestMatcherUnreadableFilesContributeNothing(t *testing.T) {
	root := t.TempDir()
	// Point the global ignore at a directory: reading it fails, which must
	// degrade to "no patterns", not an error.
	m := newTestCompiler(WithUserIgnoreFile(t.TempDir())).Get(root)
	assert.False(t, m.Ignored(filepath.Join(root, "anything.txt"), false))
}
