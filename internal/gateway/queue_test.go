package gateway

import (
	"context"
	"testing"
	"time"
)

func pj(id string) *pendingJob {
	return &pendingJob{job: Job{ID: id}, out: newResultChannel(id)}
}

func TestQueueFIFO(t *testing.T) {
	q := newAdmissionQueue(3)
	for _, id := range []string{"a", "b", "c"} {
		if err := q.Submit(pj(id)); err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
	}
	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryTake()
		if !ok {
			t.Fatalf("expected entry %s", want)
		}
		if got.job.ID != want {
			t.Fatalf("dequeue order: got %s want %s", got.job.ID, want)
		}
	}
}

func TestQueueRejectsAtCapacityWithoutBlocking(t *testing.T) {
	q := newAdmissionQueue(2)
	if err := q.Submit(pj("1")); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if err := q.Submit(pj("2")); err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- q.Submit(pj("3")) }()
	select {
	case err := <-done:
		if !IsQueueFull(err) {
			t.Fatalf("expected queue-full error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("submit blocked at capacity")
	}
	if q.Depth() != 2 || q.Capacity() != 2 {
		t.Fatalf("depth=%d capacity=%d", q.Depth(), q.Capacity())
	}
}

func TestTryTakeEmpty(t *testing.T) {
	q := newAdmissionQueue(1)
	if _, ok := q.TryTake(); ok {
		t.Fatal("TryTake on empty queue returned an entry")
	}
}

func TestTakeWaitTimesOut(t *testing.T) {
	q := newAdmissionQueue(1)
	start := time.Now()
	if _, ok := q.TakeWait(context.Background(), 5*time.Millisecond); ok {
		t.Fatal("expected empty take")
	}
	if time.Since(start) > time.Second {
		t.Fatal("TakeWait waited far beyond its bound")
	}
}

func TestTakeWaitReturnsOnCancel(t *testing.T) {
	q := newAdmissionQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := q.TakeWait(ctx, time.Hour); ok {
		t.Fatal("expected no entry on canceled context")
	}
}

func TestTakeWaitDeliversArrival(t *testing.T) {
	q := newAdmissionQueue(1)
	go func() {
		time.Sleep(2 * time.Millisecond)
		_ = q.Submit(pj("late"))
	}()
	got, ok := q.TakeWait(context.Background(), time.Second)
	if !ok || got.job.ID != "late" {
		t.Fatalf("got %v ok=%v", got, ok)
	}
}
