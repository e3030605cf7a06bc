package types

// CompleteRequest is the payload of POST /complete: a batch of contexts to
// continue, each paired with a target continuation to report alongside, all
// sharing one set of sampling parameters.
type CompleteRequest struct {
	// Prompts to continue; one batch row each.
	// example: ["The cat sat on the"]
	Contexts []string `json:"contexts"`
	// Target continuations, aligned with contexts.
	// example: ["mat"]
	Targets []string `json:"targets"`
	// Nucleus sampling probability, in [0,1].
	// example: 0.9
	TopP float64 `json:"top_p"`
	// Sampling temperature (higher = more random), >= 0.
	// example: 0.7
	Temp float64 `json:"temp"`
	// Number of tokens to generate per context.
	// example: 64
	GenTokens int `json:"gen_tokens"`
}

// CompletionPair is one row of a completion response: the engine's generated
// token strings first, the tokenization of the supplied target second.
type CompletionPair [2][]string

// CompleteResponse is returned by POST /complete. Completion is aligned with
// the request's contexts order.
type CompleteResponse struct {
	Completion []CompletionPair `json:"completion"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: queue full, try again later
	Error string `json:"error" example:"queue full, try again later"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Whether the worker loop is live and draining the queue.
	// example: true
	Ready bool `json:"ready"`
	// Current worker loop state (idle, draining, computing, publishing).
	// example: idle
	WorkerState string `json:"worker_state" example:"idle"`
	// Jobs waiting in the admission queue.
	// example: 3
	QueueDepth int `json:"queue_depth" example:"3"`
	// Admission bound; submissions beyond it are rejected.
	// example: 100
	QueueCapacity int `json:"queue_capacity" example:"100"`
	// Jobs that produced a scored result.
	// example: 42
	JobsCompleted uint64 `json:"jobs_completed" example:"42"`
	// Jobs that terminated with an error result.
	// example: 1
	JobsFailed uint64 `json:"jobs_failed" example:"1"`
	// Context rows scored across all jobs.
	// example: 128
	RowsScored uint64 `json:"rows_scored" example:"128"`
	// Whether an engine handle is configured.
	// example: true
	EngineReady bool `json:"engine_ready"`
	// Whether the tokenizer passed its startup probe.
	// example: true
	TokenizerReady bool `json:"tokenizer_ready"`
	// Last error observed by the worker (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
