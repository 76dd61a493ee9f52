package fscontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// collectPaths drains FilePaths, failing the test on a walk error.
func collectPaths(t *testing.T, p *Provider) []string {
	t.Helper()
	var paths []string
	for path, err := range p.FilePaths() {
		require.NoError(t, err)
		paths = append(paths, path)
	}
	return paths
}

func TestFilePaths(t *testing.T) {
	t.Run("yields all regular files recursively", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.txt", "a")
		b := writeFile(t, dir, "sub/b.txt", "b")
		c := writeFile(t, dir, "sub/deeper/c.txt", "c")

		p := newTestProvider(t, DefaultOptions(dir))
		assert.ElementsMatch(t, []string{a, b, c}, collectPaths(t, p))
	})

	t.Run("non-recursive stays at the top level", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.txt", "a")
		writeFile(t, dir, "sub/b.txt", "b")

		opts := DefaultOptions(dir)
		opts.Recursive = false
		p := newTestProvider(t, opts)

		assert.ElementsMatch(t, []string{a}, collectPaths(t, p))
	})

	t.Run("dotfiles excluded unless allowed", func(t *testing.T) {
		dir := t.TempDir()
		env := writeFile(t, dir, ".env", "SECRET=1")
		a := writeFile(t, dir, "a.txt", "a")

		p := newTestProvider(t, DefaultOptions(dir))
		assert.ElementsMatch(t, []string{a}, collectPaths(t, p))

		opts := DefaultOptions(dir)
		opts.AllowHidden = true
		p = newTestProvider(t, opts)
		assert.ElementsMatch(t, []string{a, env}, collectPaths(t, p))
	})

	t.Run("hidden subdirectories skipped unless allowed", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.txt", "a")
		hidden := writeFile(t, dir, ".git/config", "cfg")

		p := newTestProvider(t, DefaultOptions(dir))
		assert.ElementsMatch(t, []string{a}, collectPaths(t, p))

		opts := DefaultOptions(dir)
		opts.AllowHiddenSubdirectories = true
		opts.AllowHidden = true
		p = newTestProvider(t, opts)
		assert.ElementsMatch(t, []string{a, hidden}, collectPaths(t, p))
	})

	t.Run("hidden subdirectory files need both flags", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".git/config", "cfg")

		// Descending into .git without AllowHidden still filters the
		// files inside only by their own names.
		opts := DefaultOptions(dir)
		opts.AllowHiddenSubdirectories = true
		p := newTestProvider(t, opts)

		paths := collectPaths(t, p)
		assert.Len(t, paths, 1)
		assert.Equal(t, "config", filepath.Base(paths[0]))
	})

	t.Run("name whitelist filters files", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.py", "print()")
		writeFile(t, dir, "b.txt", "b")

		opts := DefaultOptions(dir)
		opts.RegexWhitelist = `\.py$`
		p := newTestProvider(t, opts)

		assert.ElementsMatch(t, []string{a}, collectPaths(t, p))
	})

	t.Run("rewalks from scratch on each call", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "a")
		writeFile(t, dir, "sub/b.txt", "b")

		p := newTestProvider(t, DefaultOptions(dir))
		first := collectPaths(t, p)
		second := collectPaths(t, p)
		assert.ElementsMatch(t, first, second)

		// New files show up on the next walk.
		c := writeFile(t, dir, "c.txt", "c")
		third := collectPaths(t, p)
		assert.ElementsMatch(t, append(first, c), third)
	})

	t.Run("listing failure terminates the sequence", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission-based fixture does not work as root")
		}

		dir := t.TempDir()
		locked := filepath.Join(dir, "a-locked")
		require.NoError(t, os.Mkdir(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })
		writeFile(t, dir, "z.txt", "z")

		p := newTestProvider(t, DefaultOptions(dir))

		var paths []string
		var errs []error
		for path, err := range p.FilePaths() {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			paths = append(paths, path)
		}

		require.Len(t, errs, 1)
		// a-locked sorts before z.txt; nothing may follow the error even
		// for a consumer that keeps ranging.
		assert.Empty(t, paths)
	})

	t.Run("missing root reports an error", func(t *testing.T) {
		p := newTestProvider(t, DefaultOptions(filepath.Join(t.TempDir(), "nope")))

		var walkErr error
		for _, err := range p.FilePaths() {
			walkErr = err
		}
		assert.Error(t, walkErr)
	})

	t.Run("consumer can stop early", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "a")
		writeFile(t, dir, "b.txt", "b")
		writeFile(t, dir, "c.txt", "c")

		p := newTestProvider(t, DefaultOptions(dir))
		count := 0
		for _, err := range p.FilePaths() {
			require.NoError(t, err)
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}
