package gateway

import "fmt"

// queueFullError signals admission backpressure for 503 mapping. The message
// is part of the wire contract and must stay stable.
type queueFullError struct{ capacity int }

func (e queueFullError) Error() string { return "queue full, try again later" }

// ErrQueueFull constructs an admission backpressure error.
func ErrQueueFull(capacity int) error { return queueFullError{capacity: capacity} }

// IsQueueFull reports whether err indicates the admission queue rejected a
// job at capacity.
func IsQueueFull(err error) bool {
	_, ok := err.(queueFullError)
	return ok
}

// invalidJobError rejects a malformed submission before admission.
type invalidJobError struct{ reason string }

func (e invalidJobError) Error() string { return "invalid job: " + e.reason }

// ErrInvalidJob constructs a validation error with the given reason.
func ErrInvalidJob(reason string) error { return invalidJobError{reason: reason} }

// IsInvalidJob reports whether err is a submission validation failure.
func IsInvalidJob(err error) bool {
	_, ok := err.(invalidJobError)
	return ok
}

// engineFailureError wraps an engine fault for one job. The worker survives
// it; the caller sees it as the job's terminal result.
type engineFailureError struct {
	jobID string
	cause error
}

func (e engineFailureError) Error() string {
	return fmt.Sprintf("engine failure for job %s: %v", e.jobID, e.cause)
}

func (e engineFailureError) Unwrap() error { return e.cause }

// ErrEngineFailure constructs an engineFailureError.
func ErrEngineFailure(jobID string, cause error) error {
	return engineFailureError{jobID: jobID, cause: cause}
}

// IsEngineFailure reports whether err is a per-job engine fault.
func IsEngineFailure(err error) bool {
	_, ok := err.(engineFailureError)
	return ok
}

// dependencyUnavailableError signals a missing runtime dependency (e.g. the
// llama backend was not compiled in) so the HTTP layer can return 503
// instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}

// alreadyDeliveredError flags a second send on a single-use result channel.
// A programming invariant violation: logged loudly, never silently dropped.
type alreadyDeliveredError struct{ jobID string }

func (e alreadyDeliveredError) Error() string {
	return "result already delivered for job " + e.jobID
}

// IsAlreadyDelivered reports whether err is a duplicate result delivery.
func IsAlreadyDelivered(err error) bool {
	_, ok := err.(alreadyDeliveredError)
	return ok
}

// resultAbandonedError is returned to a receiver that gave up waiting
// (timeout or disconnect). The worker's eventual send becomes a no-op.
type resultAbandonedError struct{ jobID string }

func (e resultAbandonedError) Error() string {
	return "result abandoned for job " + e.jobID
}

// IsResultAbandoned reports whether err means the caller stopped waiting
// before the result arrived.
func IsResultAbandoned(err error) bool {
	_, ok := err.(resultAbandonedError)
	return ok
}
