package fscontext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultChunkSize is the read granularity in bytes.
	DefaultChunkSize = 1024

	// DefaultTokenLimit is the default token budget for one iteration.
	DefaultTokenLimit = 10000
)

// ReadOptions controls chunking and budgeting for Files.
type ReadOptions struct {
	// ChunkSize is the number of bytes read per chunk.
	// Values <= 0 use DefaultChunkSize.
	ChunkSize int

	// TokenLimit is the token budget for the whole iteration. The value is
	// taken literally: a limit of 0 stops after the first non-empty chunk.
	TokenLimit int
}

// DefaultReadOptions returns the standard chunk size and token limit.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		ChunkSize:  DefaultChunkSize,
		TokenLimit: DefaultTokenLimit,
	}
}

// FileRecord is one gathered file: its token count, path and stripped
// content. When the token budget is hit mid-file, Tokens carries the
// running total across all files instead of the per-file count.
type FileRecord struct {
	Tokens  int
	Path    string
	Content string
}

// Files returns a lazy sequence of records for the matching files,
// reading each in chunks and accumulating token counts until the budget
// is exceeded. Exceeding the budget yields one final record with the
// content gathered so far and terminates the whole sequence, not just
// the current file.
//
// Files that tokenize to zero are omitted. Undecodable files are logged
// and skipped when SkipUnreadable is set, otherwise they terminate the
// sequence with ErrUnreadable. Filesystem failures always terminate the
// sequence. Each call owns its own running budget.
func (p *Provider) Files(opts ReadOptions) iter.Seq2[FileRecord, error] {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return func(yield func(FileRecord, error) bool) {
		totalTokens := 0

		for path, err := range p.FilePaths() {
			if err != nil {
				yield(FileRecord{}, err)
				return
			}

			record, budgetHit, err := p.readFile(path, chunkSize, opts.TokenLimit, &totalTokens)
			if err != nil {
				if errors.Is(err, ErrUnreadable) {
					p.logger.Error("failed to read file",
						zap.String("path", path),
						zap.Error(err),
					)
					if p.opts.SkipUnreadable {
						continue
					}
				}
				yield(FileRecord{}, err)
				return
			}

			if budgetHit {
				yield(record, nil)
				return
			}
			if record.Tokens == 0 {
				continue
			}
			if p.opts.SkipEmpty && record.Content == "" {
				continue
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// readFile reads one file in chunks, stripping whitespace and counting
// tokens per chunk. It reports budgetHit when the running total exceeds
// tokenLimit, in which case the record holds the running total and the
// content read so far. The file handle is closed before returning.
func (p *Provider) readFile(path string, chunkSize, tokenLimit int, totalTokens *int) (record FileRecord, budgetHit bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return FileRecord{}, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var content strings.Builder
	fileTokens := 0
	buf := make([]byte, chunkSize)
	var carry []byte

	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			raw := buf[:n:n]
			if len(carry) > 0 {
				raw = append(carry, raw...)
			}
			if bytes.IndexByte(raw, 0) >= 0 {
				return FileRecord{}, false, fmt.Errorf("%w: %s", ErrUnreadable, path)
			}

			// A multi-byte rune split by the chunk boundary is carried into
			// the next chunk; only genuinely invalid sequences are dropped.
			cut := splitIncompleteRune(raw)
			carry = append([]byte(nil), raw[cut:]...)

			// Permissive decode: invalid UTF-8 sequences are dropped.
			chunk := strings.TrimSpace(strings.ToValidUTF8(string(raw[:cut]), ""))
			content.WriteString(chunk)

			tokens := p.counter.CountTokens(chunk)
			fileTokens += tokens
			*totalTokens += tokens

			if *totalTokens > tokenLimit {
				return FileRecord{
					Tokens:  *totalTokens,
					Path:    path,
					Content: content.String(),
				}, true, nil
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return FileRecord{}, false, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
	}

	return FileRecord{
		Tokens:  fileTokens,
		Path:    path,
		Content: content.String(),
	}, false, nil
}

// splitIncompleteRune returns the length of the longest prefix of raw that
// does not end in a truncated multi-byte UTF-8 sequence. The remainder, at
// most utf8.UTFMax-1 bytes, belongs to a rune whose tail is still unread.
// Invalid sequences count as complete so they are dropped, not carried.
func splitIncompleteRune(raw []byte) int {
	if r, size := utf8.DecodeLastRune(raw); r != utf8.RuneError || size > 1 {
		return len(raw)
	}

	lower := len(raw) - utf8.UTFMax + 1
	if lower < 0 {
		lower = 0
	}
	for i := len(raw) - 1; i >= lower; i-- {
		if utf8.RuneStart(raw[i]) {
			if !utf8.FullRune(raw[i:]) {
				return i
			}
			break
		}
	}
	return len(raw)
}
