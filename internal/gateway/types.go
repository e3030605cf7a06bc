package gateway

import "time"

// WorkerState is the lifecycle state of the worker loop, reported via
// /status and the worker_state gauge.
type WorkerState int32

const (
	WorkerIdle WorkerState = iota
	WorkerDraining
	WorkerComputing
	WorkerPublishing
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerDraining:
		return "draining"
	case WorkerComputing:
		return "computing"
	case WorkerPublishing:
		return "publishing"
	default:
		return "unknown"
	}
}

// Job is one client submission: N contexts scored against N targets with a
// single set of sampling parameters. Immutable once admitted.
type Job struct {
	ID        string
	Contexts  []string
	Targets   []string
	TopP      float64
	Temp      float64
	GenTokens int
	Submitted time.Time
}

// pendingJob binds an admitted Job to the channel its result is delivered
// on. Owned by the admission queue until dequeued, then by the worker until
// the result is published.
type pendingJob struct {
	job Job
	out *ResultChannel
}

// EncodedBatch is the fixed-width numeric input handed to the engine.
// Tokens is N rows by SeqLen columns, left-padded with the pad token id;
// Lengths[i] is the true (unpadded) token count of row i, capped at SeqLen.
type EncodedBatch struct {
	Tokens  [][]uint32
	Lengths []int
}

// Generation is the engine's raw output for one batch: the token ids it
// chose at each generated position and the log-probability distribution
// over the vocabulary at those positions (already log-softmaxed).
type Generation struct {
	TokenIDs [][]int
	LogProbs [][][]float32
}

// RowResult is one context's scored output. GeneratedTokens is the decoded
// free-running continuation, TargetTokens the tokenization of the supplied
// target, reported side by side. TokenLogProbs is the log-probability the
// engine assigned to each token it generated; it is logged, not serialized.
type RowResult struct {
	GeneratedTokens []string
	TargetTokens    []string
	TokenLogProbs   []float64
}

// ScoredResult is a whole job's output, row order mirroring the job's
// context order.
type ScoredResult struct {
	JobID string
	Rows  []RowResult
}

// Result is the single terminal signal delivered per admitted job: a scored
// result or an error, never both.
type Result struct {
	Scored ScoredResult
	Err    error
}
