//go:build llama

package gateway

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaEngine adapts an in-process llama.cpp model to the Engine contract.
// The model handle is not safe for concurrent use, which is exactly the
// constraint the single worker loop enforces.
//
// llama.cpp predicts from text, so the adapter detokenizes each padded row
// back through the gateway tokenizer before predicting and re-encodes the
// continuation afterwards. The bindings expose no per-position logits, so
// Generation.LogProbs stays empty and TokenLogProbs in results is empty for
// this backend.
type llamaEngine struct {
	model *llama.LLama
	tok   Tokenizer
	pad   uint32

	threads int
}

// NewLlamaEngine loads the model at path and returns an Engine over it.
func NewLlamaEngine(path string, ctxSize, threads int, padTokenID uint32, tok Tokenizer) (Engine, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	if tok == nil {
		return nil, errors.New("tokenizer is required")
	}
	m, err := llama.New(path, llama.SetContext(ctxSize))
	if err != nil {
		return nil, err
	}
	return &llamaEngine{model: m, tok: tok, pad: padTokenID, threads: threads}, nil
}

func (e *llamaEngine) Generate(ctx context.Context, batch EncodedBatch, genTokens int, params SamplingParams) (Generation, error) {
	gen := Generation{
		TokenIDs: make([][]int, len(batch.Tokens)),
		LogProbs: make([][][]float32, len(batch.Tokens)),
	}
	for i, row := range batch.Tokens {
		if err := ctx.Err(); err != nil {
			return Generation{}, err
		}
		prompt := e.rowText(row, batch.Lengths[i])
		if batch.Lengths[i] == 0 {
			// Empty row (encoding failure upstream): nothing to continue.
			gen.TokenIDs[i] = []int{}
			continue
		}

		collected := 0
		var b strings.Builder
		e.model.SetTokenCallback(func(tok string) bool {
			select {
			case <-ctx.Done():
				return false
			default:
			}
			b.WriteString(tok)
			collected++
			return collected < genTokens
		})
		_, err := e.model.Predict(prompt,
			llama.SetTokens(genTokens),
			llama.SetThreads(maxInt(1, e.threads)),
			llama.SetTopP(float32(params.TopP)),
			llama.SetTemperature(float32(params.Temperature)),
		)
		if err != nil {
			if ctx.Err() != nil {
				return Generation{}, ctx.Err()
			}
			return Generation{}, err
		}
		ids, err := e.tok.Encode(b.String())
		if err != nil {
			ids = nil
		}
		if len(ids) > genTokens {
			ids = ids[:genTokens]
		}
		gen.TokenIDs[i] = ids
	}
	return gen, nil
}

// rowText reconstructs the unpadded tail of a batch row as text.
func (e *llamaEngine) rowText(row []uint32, length int) string {
	if length <= 0 || length > len(row) {
		return ""
	}
	ids := make([]int, 0, length)
	for _, id := range row[len(row)-length:] {
		ids = append(ids, int(id))
	}
	return strings.Join(e.tok.Decode(ids), "")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
