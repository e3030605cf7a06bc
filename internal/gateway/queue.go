package gateway

import (
	"context"
	"time"
)

// AdmissionQueue is a bounded FIFO of pending jobs shared by all submitting
// goroutines (producers) and the single worker (consumer). Both ends are
// non-blocking; the worker's wait policy lives in TakeWait.
type AdmissionQueue struct {
	ch chan *pendingJob
}

func newAdmissionQueue(capacity int) *AdmissionQueue {
	return &AdmissionQueue{ch: make(chan *pendingJob, capacity)}
}

// Submit enqueues pj. It never blocks: at capacity it fails immediately so a
// slow worker cannot pile up unbounded callers behind it.
func (q *AdmissionQueue) Submit(pj *pendingJob) error {
	select {
	case q.ch <- pj:
		queueDepth.Set(float64(len(q.ch)))
		return nil
	default:
		return queueFullError{capacity: cap(q.ch)}
	}
}

// TryTake dequeues the oldest pending job without blocking. The second
// return is false when the queue is empty.
func (q *AdmissionQueue) TryTake() (*pendingJob, bool) {
	select {
	case pj := <-q.ch:
		queueDepth.Set(float64(len(q.ch)))
		return pj, true
	default:
		return nil, false
	}
}

// TakeWait dequeues the oldest pending job, waiting up to d for one to
// arrive. It returns early when ctx is done. The bounded wait keeps worker
// wake latency at d worst-case without spinning.
func (q *AdmissionQueue) TakeWait(ctx context.Context, d time.Duration) (*pendingJob, bool) {
	select {
	case pj := <-q.ch:
		queueDepth.Set(float64(len(q.ch)))
		return pj, true
	default:
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case pj := <-q.ch:
		queueDepth.Set(float64(len(q.ch)))
		return pj, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Depth returns the number of queued jobs.
func (q *AdmissionQueue) Depth() int { return len(q.ch) }

// Capacity returns the admission bound.
func (q *AdmissionQueue) Capacity() int { return cap(q.ch) }
