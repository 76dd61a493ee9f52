// Package fscontext scans a directory tree and gathers file contents for use
// as LLM context. Files are selected by name/path regex patterns and
// visibility rules, read with permissive decoding, and accumulated under a
// token budget so the result fits a model's context window.
package fscontext

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Harsha9198/openai-helper/internal/tokenizer"
	"go.uber.org/zap"
)

// ErrUnreadable marks a file whose content could not be decoded as text.
// Depending on Options.SkipUnreadable it is either logged and skipped or
// propagated to the caller.
var ErrUnreadable = errors.New("unreadable file")

// Options configures a Provider. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	// Directory is the root of the scan. Required.
	Directory string

	// RegexWhitelist, when non-empty, restricts files to those whose base
	// name matches the pattern (search semantics, not anchored).
	RegexWhitelist string

	// RegexBlacklist excludes files whose base name matches the pattern.
	RegexBlacklist string

	// RegexPathWhitelist restricts files to those whose full path matches.
	RegexPathWhitelist string

	// RegexPathBlacklist excludes files whose full path matches.
	RegexPathBlacklist string

	// AllowHidden includes dotfiles in the scan.
	AllowHidden bool

	// AllowHiddenSubdirectories descends into dot-directories.
	AllowHiddenSubdirectories bool

	// Recursive descends into subdirectories at all.
	Recursive bool

	// SkipUnreadable logs and skips files that fail to decode instead of
	// aborting the scan.
	SkipUnreadable bool

	// SkipEmpty omits files whose stripped content is empty.
	SkipEmpty bool
}

// DefaultOptions returns Options for dir with the standard defaults:
// recursive scan, hidden entries excluded, unreadable files skipped.
func DefaultOptions(dir string) Options {
	return Options{
		Directory:      dir,
		Recursive:      true,
		SkipUnreadable: true,
	}
}

// Provider scans a directory and gathers matching file contents.
// A Provider is immutable after construction and safe to reuse; every
// iteration call re-walks the filesystem with its own token budget.
type Provider struct {
	opts    Options
	counter tokenizer.Counter
	logger  *zap.Logger

	nameWhitelist *regexp.Regexp
	nameBlacklist *regexp.Regexp
	pathWhitelist *regexp.Regexp
	pathBlacklist *regexp.Regexp
}

// New creates a Provider from opts, counting tokens with counter.
// The four regex patterns are compiled once here; a pattern that does not
// compile fails construction. A nil logger is replaced with a no-op logger.
func New(opts Options, counter tokenizer.Counter, logger *zap.Logger) (*Provider, error) {
	if opts.Directory == "" {
		return nil, errors.New("fscontext: directory is required")
	}
	if counter == nil {
		return nil, errors.New("fscontext: token counter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Provider{
		opts:    opts,
		counter: counter,
		logger:  logger,
	}

	var err error
	if p.nameWhitelist, err = compilePattern(opts.RegexWhitelist); err != nil {
		return nil, fmt.Errorf("invalid regex_whitelist: %w", err)
	}
	if p.nameBlacklist, err = compilePattern(opts.RegexBlacklist); err != nil {
		return nil, fmt.Errorf("invalid regex_blacklist: %w", err)
	}
	if p.pathWhitelist, err = compilePattern(opts.RegexPathWhitelist); err != nil {
		return nil, fmt.Errorf("invalid regex_path_whitelist: %w", err)
	}
	if p.pathBlacklist, err = compilePattern(opts.RegexPathBlacklist); err != nil {
		return nil, fmt.Errorf("invalid regex_path_blacklist: %w", err)
	}

	return p, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
