package fscontext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CalculateTokens returns the total token count across the matching
// files, using the default chunk size and token limit. Because it sums
// the budget-bounded sequence, the result is itself capped by the
// default budget rather than being an unconditional total.
func (p *Provider) CalculateTokens() (int, error) {
	total := 0
	for record, err := range p.Files(DefaultReadOptions()) {
		if err != nil {
			return 0, err
		}
		total += record.Tokens
	}
	return total, nil
}

// Context returns the gathered files as a single string ready to be
// passed to a model, using the default chunk size and token limit.
func (p *Provider) Context() (string, error) {
	return p.ContextWith(DefaultReadOptions())
}

// ContextWith builds the context string with explicit read options:
// one section per file, a header naming the path relative to the scan
// root followed by the file's content, sections separated by a blank
// line.
func (p *Provider) ContextWith(opts ReadOptions) (string, error) {
	var sections []string

	for record, err := range p.Files(opts) {
		if err != nil {
			return "", err
		}

		rel, err := filepath.Rel(p.opts.Directory, record.Path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			// The walker only emits paths under the root, so this is a
			// logic defect rather than an input problem.
			return "", fmt.Errorf("path %s is not under %s", record.Path, p.opts.Directory)
		}

		sections = append(sections, fmt.Sprintf("// File '%s'\n%s\n", rel, record.Content))
	}

	return strings.Join(sections, "\n\n\n"), nil
}
