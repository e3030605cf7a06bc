package gateway

// SanityReport describes startup checks for the gateway's collaborators.
type SanityReport struct {
	EngineReady    bool   `json:"engine_ready"`
	TokenizerReady bool   `json:"tokenizer_ready"`
	Error          string `json:"error,omitempty"`
}

// SanityCheck validates that the engine and tokenizer handles are usable.
// It does not mutate state and is safe to call at any time. A present but
// unavailable engine (stub build) surfaces later as a 503 per request, not
// here: availability is a per-call property of the engine.
func (g *Gateway) SanityCheck() SanityReport {
	r := SanityReport{}
	if g.engine == nil {
		r.Error = "no engine configured"
		return r
	}
	r.EngineReady = true
	if g.tok == nil {
		r.Error = "no tokenizer configured"
		return r
	}
	if _, err := g.tok.Encode("sanity"); err != nil {
		r.Error = "tokenizer probe failed: " + err.Error()
		return r
	}
	r.TokenizerReady = true
	return r
}

// Sanity returns the report computed at construction time.
func (g *Gateway) Sanity() SanityReport { return g.sanity }
