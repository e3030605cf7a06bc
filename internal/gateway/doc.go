// Package gateway coordinates admission, queueing, and single-worker
// execution of completion/evaluation jobs. It is structured into small files
// by concern:
//
//   - gateway.go: core Gateway type, constructor, simple getters.
//   - config.go: Config and package defaults.
//   - types.go: Job, pendingJob, EncodedBatch, Generation, results.
//   - errors.go: error types and helpers (IsQueueFull, IsInvalidJob, ...).
//   - validate.go: pre-admission job validation.
//   - queue.go: AdmissionQueue (bounded FIFO, non-blocking submit/take).
//   - router.go: ResultChannel (single-use job-to-caller handoff).
//   - complete.go: Submit/CompleteJob/Complete entry points.
//   - worker.go: the Run loop (Idle, Draining, Computing, Publishing).
//   - encode.go: batch encoding (left-pad / tail-truncate to SeqLen).
//   - score.go: score extraction from raw engine output.
//   - metrics.go: prometheus collectors.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - sanity.go: startup dependency report.
//   - status.go: /status projection.
//
// Build tags and runtimes:
//
//   - In-process llama (optional): go-llama.cpp backed Engine, enabled with
//     `-tags=llama`. Files: adapter_llama.go, llama_cgo.go.
//     Default builds stay CGO-free via adapter_unavailable.go.
//
// The single-worker constraint is load-bearing: the Engine owns exclusive
// accelerator state and must only ever be invoked from the Run loop.
// External packages should treat this package as the orchestration layer and
// use public methods only (New, Run, Submit, Complete, Status, Ready).
package gateway
