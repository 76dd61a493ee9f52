package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultModel is the model whose encoding is used when none is specified.
const DefaultModel = "gpt-4"

// Tiktoken counts tokens using an OpenAI BPE encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken creates a Tiktoken counter for the given model name.
// An empty model name selects DefaultModel. If the model is unknown,
// the counter falls back to DefaultModel's encoding before giving up.
func NewTiktoken(model string) (*Tiktoken, error) {
	if model == "" {
		model = DefaultModel
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.EncodingForModel(DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
		}
	}

	return &Tiktoken{encoding: encoding}, nil
}

// CountTokens returns the number of BPE tokens in text.
// Special tokens are encoded as ordinary text.
func (t *Tiktoken) CountTokens(text string) int {
	if t.encoding == nil {
		return 0
	}
	return len(t.encoding.EncodeOrdinary(text))
}

// Close implements Counter. Tiktoken holds no closable resources.
func (t *Tiktoken) Close() {}
