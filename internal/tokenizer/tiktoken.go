// Package tokenizer provides the default BPE tokenizer backing the gateway.
// It wraps tiktoken with the offline dictionary loader so no network access
// is needed at runtime.
package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the BPE dictionary used when none is configured.
// https://cookbook.openai.com/examples/how_to_count_tokens_with_tiktoken
const DefaultEncoding = "cl100k_base"

// the loader is process-global tiktoken state; install it once
var loaderOnce sync.Once

// Tiktoken adapts a tiktoken encoding to the gateway's Tokenizer interface.
// Safe for concurrent use.
type Tiktoken struct {
	enc  *tiktoken.Tiktoken
	name string
}

// New returns a tokenizer for the named encoding (DefaultEncoding if empty).
func New(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return &Tiktoken{enc: enc, name: encoding}, nil
}

// Name returns the encoding name.
func (t *Tiktoken) Name() string { return t.name }

// Encode converts text to vocabulary ids.
func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, nil, nil), nil
}

// Decode converts ids to their per-token string forms, preserving order.
// Per-id decoding (rather than one joined string) keeps the output aligned
// with token positions for trace reporting.
func (t *Tiktoken) Decode(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = t.enc.Decode([]int{id})
	}
	return out
}
