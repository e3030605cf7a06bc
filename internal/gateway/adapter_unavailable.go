package gateway

import "context"

// unavailableEngine satisfies Engine but refuses every call. Default builds
// without the 'llama' tag use it so the daemon still serves /status and
// health endpoints while /complete fails fast with 503. No mocked output.
type unavailableEngine struct {
	reason string
}

// NewUnavailableEngine returns an Engine whose Generate always fails with a
// dependency-unavailable error carrying reason.
func NewUnavailableEngine(reason string) Engine {
	if reason == "" {
		reason = "engine not available in this build"
	}
	return unavailableEngine{reason: reason}
}

func (e unavailableEngine) Generate(ctx context.Context, batch EncodedBatch, genTokens int, params SamplingParams) (Generation, error) {
	select {
	case <-ctx.Done():
		return Generation{}, ctx.Err()
	default:
	}
	return Generation{}, ErrDependencyUnavailable(e.reason)
}
