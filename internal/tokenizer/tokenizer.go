// Package tokenizer provides token counting for LLM context budgeting.
// The Counter interface abstracts the tokenization scheme so callers can
// inject a real BPE tokenizer or a cheap deterministic estimate.
package tokenizer

// Counter counts the approximate number of model tokens in a text string.
// Implementations must be deterministic and side-effect free per call.
type Counter interface {
	// CountTokens returns the token count for text. Empty text counts as zero.
	CountTokens(text string) int

	// Close releases any resources held by the counter.
	Close()
}
