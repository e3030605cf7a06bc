package gateway

import (
	"context"
	"sync/atomic"
)

// ResultChannel is the single-use handoff binding one admitted job to the
// one caller waiting for it. Exactly one Send may ever succeed; the buffer
// of one guarantees Send never blocks even if the receiver is gone.
type ResultChannel struct {
	jobID     string
	ch        chan Result
	sent      atomic.Bool
	abandoned atomic.Bool
}

func newResultChannel(jobID string) *ResultChannel {
	return &ResultChannel{jobID: jobID, ch: make(chan Result, 1)}
}

// Send delivers r to the waiting caller. The second and later sends are
// rejected so a duplicate publish surfaces as an error instead of
// corrupting another request's wait.
func (rc *ResultChannel) Send(r Result) error {
	if !rc.sent.CompareAndSwap(false, true) {
		return alreadyDeliveredError{jobID: rc.jobID}
	}
	rc.ch <- r
	return nil
}

// Receive blocks until the worker delivers the job's result. When ctx ends
// first, the channel is marked abandoned and the worker's eventual Send
// parks harmlessly in the buffer. Pass a Background context for the
// unbounded wait.
func (rc *ResultChannel) Receive(ctx context.Context) (Result, error) {
	select {
	case r := <-rc.ch:
		return r, nil
	case <-ctx.Done():
		rc.abandoned.Store(true)
		// The result may have landed while we were giving up; prefer it.
		select {
		case r := <-rc.ch:
			rc.abandoned.Store(false)
			return r, nil
		default:
		}
		return Result{}, resultAbandonedError{jobID: rc.jobID}
	}
}

// Abandoned reports whether the receiver gave up before delivery.
func (rc *ResultChannel) Abandoned() bool { return rc.abandoned.Load() }

// JobID returns the id of the job this channel delivers for.
func (rc *ResultChannel) JobID() string { return rc.jobID }
