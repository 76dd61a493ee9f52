package fscontext

import (
	"path/filepath"
	"strings"
)

// fileMatches reports whether path passes the provider's filter rules.
// Rules are applied in order and short-circuit on the first failure:
// hidden-name check, name whitelist, name blacklist, path whitelist,
// path blacklist. Patterns use search semantics (match anywhere unless
// the pattern itself is anchored).
func (p *Provider) fileMatches(path string) bool {
	name := filepath.Base(path)

	if !p.opts.AllowHidden && isHidden(name) {
		return false
	}
	if p.nameWhitelist != nil && !p.nameWhitelist.MatchString(name) {
		return false
	}
	if p.nameBlacklist != nil && p.nameBlacklist.MatchString(name) {
		return false
	}
	if p.pathWhitelist != nil && !p.pathWhitelist.MatchString(path) {
		return false
	}
	if p.pathBlacklist != nil && p.pathBlacklist.MatchString(path) {
		return false
	}
	return true
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
