//go:build !llama

package main

import (
	"evald/internal/gateway"
)

// buildEngine in default (CGO-free) builds returns the fail-fast engine:
// the daemon still serves status and health endpoints, and /complete
// answers 503 until a llama-tagged binary is deployed.
func buildEngine(modelPath string, opts *serveOptions, tok gateway.Tokenizer) (gateway.Engine, error) {
	return gateway.NewUnavailableEngine("engine support not built (missing 'llama' build tag)"), nil
}
