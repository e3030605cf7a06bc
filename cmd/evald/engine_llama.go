//go:build llama

package main

import (
	"errors"
	"fmt"

	"evald/internal/common/fsutil"
	"evald/internal/gateway"
)

// buildEngine loads the in-process llama.cpp model configured by
// --model-path. The returned handle is owned exclusively by the gateway's
// worker loop.
func buildEngine(modelPath string, opts *serveOptions, tok gateway.Tokenizer) (gateway.Engine, error) {
	if modelPath == "" {
		return nil, errors.New("--model-path is required for llama builds")
	}
	if !fsutil.PathExists(modelPath) {
		return nil, fmt.Errorf("model path does not exist: %s", modelPath)
	}
	return gateway.NewLlamaEngine(modelPath, opts.seqLen, opts.threads, uint32(opts.padTokenID), tok)
}
