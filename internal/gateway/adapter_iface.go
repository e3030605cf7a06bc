package gateway

import "context"

// SamplingParams are the sampling knobs shared by every row of a job's
// batch. One HTTP submission carries one set for all its contexts.
type SamplingParams struct {
	TopP        float64
	Temperature float64
}

// Engine is the compute runtime that owns the accelerator state. It is not
// safe for concurrent invocation: exactly one goroutine (the worker loop)
// may call Generate for the lifetime of the process.
//
// Generate consumes a fixed-width batch and produces, for each row, the
// genTokens token ids the engine chose plus the log-probability
// distribution over the vocabulary at each generated position.
// Implementations must return when the context is canceled.
type Engine interface {
	Generate(ctx context.Context, batch EncodedBatch, genTokens int, params SamplingParams) (Generation, error)
}

// Tokenizer converts between raw text and the engine's vocabulary. Stateless
// per call and safe for concurrent use.
type Tokenizer interface {
	// Encode converts text to vocabulary ids.
	Encode(text string) ([]int, error)
	// Decode converts ids to their per-token string forms, preserving order.
	Decode(ids []int) []string
}
