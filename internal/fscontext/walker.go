package fscontext

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// FilePaths returns a lazy depth-first sequence of the matching regular
// files under the provider's directory. Subdirectories are entered only
// when Recursive is set, and dot-directories only when
// AllowHiddenSubdirectories is set. Entry order follows the underlying
// directory listing and is OS-dependent; each call re-walks the
// filesystem from scratch.
//
// A directory that cannot be listed terminates the sequence with a
// non-nil error.
func (p *Provider) FilePaths() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		p.walk(p.opts.Directory, yield)
	}
}

// walk emits matching files under dir. It returns false once the
// consumer stops iterating.
func (p *Provider) walk(dir string, yield func(string, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// A listing failure is terminal for the whole sequence.
		yield("", fmt.Errorf("failed to list directory %s: %w", dir, err))
		return false
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			// Follow the link; a broken symlink is silently skipped.
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsRegular():
			if !p.fileMatches(path) {
				continue
			}
			if !yield(path, nil) {
				return false
			}
		case mode.IsDir():
			if !p.opts.Recursive {
				continue
			}
			if !p.opts.AllowHiddenSubdirectories && isHidden(entry.Name()) {
				continue
			}
			if !p.walk(path, yield) {
				return false
			}
		default:
			// Sockets, devices and other special files are not context.
		}
	}

	return true
}
