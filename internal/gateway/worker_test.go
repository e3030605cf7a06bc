package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCompleteJobEndToEnd(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	startWorker(t, g)

	res, err := g.CompleteJob(context.Background(),
		testJob([]string{"The cat sat on the"}, []string{"mat"}, 4))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d", len(res.Rows))
	}
	if len(res.Rows[0].GeneratedTokens) != 4 {
		t.Fatalf("generated %v, want 4 tokens", res.Rows[0].GeneratedTokens)
	}
	if len(res.Rows[0].TargetTokens) != 3 {
		t.Fatalf("target %v, want tokenization of \"mat\"", res.Rows[0].TargetTokens)
	}
	if len(res.Rows[0].TokenLogProbs) != 4 {
		t.Fatalf("log probs %v", res.Rows[0].TokenLogProbs)
	}
}

func TestCompleteJobMultiRowOrder(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	startWorker(t, g)

	res, err := g.CompleteJob(context.Background(),
		testJob([]string{"one", "two", "three"}, []string{"a", "bb", "ccc"}, 2))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows=%d", len(res.Rows))
	}
	for i, wantLen := range []int{1, 2, 3} {
		if len(res.Rows[i].TargetTokens) != wantLen {
			t.Fatalf("row %d target %v", i, res.Rows[i].TargetTokens)
		}
	}
}

func TestSubmitRejectsBeyondCapacity(t *testing.T) {
	// No worker running: submissions pile up to the bound, then reject.
	g := newTestGateway(t, Config{QueueCapacity: 2}, nil)
	job := testJob([]string{"c"}, []string{"t"}, 1)
	if _, err := g.Submit(job); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if _, err := g.Submit(job); err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	start := time.Now()
	_, err := g.Submit(job)
	if !IsQueueFull(err) {
		t.Fatalf("expected queue-full, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("rejection was not immediate")
	}
	if err.Error() != "queue full, try again later" {
		t.Fatalf("overload message changed: %q", err.Error())
	}
}

func TestEngineFaultSurfacesAndWorkerSurvives(t *testing.T) {
	eng := &scriptedEngine{failOnCall: map[int]error{1: errors.New("mesh fault")}}
	g := newTestGateway(t, Config{}, eng)
	startWorker(t, g)

	job := testJob([]string{"c"}, []string{"t"}, 1)
	_, err := g.CompleteJob(context.Background(), job)
	if !IsEngineFailure(err) {
		t.Fatalf("expected engine failure, got %v", err)
	}

	res, err := g.CompleteJob(context.Background(), job)
	if err != nil {
		t.Fatalf("job after fault: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d", len(res.Rows))
	}
	if eng.callCount() != 2 {
		t.Fatalf("engine calls=%d", eng.callCount())
	}
}

func TestEnginePanicRecoveredAsTerminalError(t *testing.T) {
	eng := &scriptedEngine{panicOnCall: map[int]bool{1: true}}
	g := newTestGateway(t, Config{}, eng)
	startWorker(t, g)

	job := testJob([]string{"c"}, []string{"t"}, 1)
	_, err := g.CompleteJob(context.Background(), job)
	if !IsEngineFailure(err) {
		t.Fatalf("expected engine failure from panic, got %v", err)
	}
	if _, err := g.CompleteJob(context.Background(), job); err != nil {
		t.Fatalf("worker did not survive panic: %v", err)
	}
}

func TestDependencyUnavailablePassesThrough(t *testing.T) {
	g := newTestGateway(t, Config{}, NewUnavailableEngine("no backend"))
	startWorker(t, g)
	_, err := g.CompleteJob(context.Background(), testJob([]string{"c"}, []string{"t"}, 1))
	if !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency-unavailable, got %v", err)
	}
}

func TestConcurrentSubmissionsAllGetExactlyOneResult(t *testing.T) {
	g := newTestGateway(t, Config{QueueCapacity: 100}, nil)
	startWorker(t, g)

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	rows := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := g.CompleteJob(context.Background(),
				testJob([]string{"ctx"}, []string{"tgt"}, 2))
			errs[i] = err
			rows[i] = len(res.Rows)
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("submission %d failed: %v", i, errs[i])
		}
		if rows[i] != 1 {
			t.Fatalf("submission %d rows=%d", i, rows[i])
		}
	}
	if done := g.jobsDone.Load(); done != n {
		t.Fatalf("jobsDone=%d want %d", done, n)
	}
}

func TestRequestTimeoutAbandonsWait(t *testing.T) {
	eng := &scriptedEngine{delay: 200 * time.Millisecond}
	g := newTestGateway(t, Config{RequestTimeout: 10 * time.Millisecond}, eng)
	startWorker(t, g)

	_, err := g.CompleteJob(context.Background(), testJob([]string{"c"}, []string{"t"}, 1))
	if !IsResultAbandoned(err) {
		t.Fatalf("expected abandoned result, got %v", err)
	}
	// The worker's eventual delivery must be a no-op; the next job still runs.
	eng2 := g.engine.(*scriptedEngine)
	eng2.mu.Lock()
	eng2.delay = 0
	eng2.mu.Unlock()
	if _, err := g.CompleteJob(context.Background(), testJob([]string{"c"}, []string{"t"}, 1)); err != nil {
		t.Fatalf("job after abandonment: %v", err)
	}
}

func TestEventsPublished(t *testing.T) {
	pub := NewMemoryPublisher()
	g := newTestGateway(t, Config{Events: pub}, nil)
	startWorker(t, g)

	if _, err := g.CompleteJob(context.Background(), testJob([]string{"c"}, []string{"t"}, 1)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	names := map[string]bool{}
	for _, e := range pub.Events() {
		names[e.Name] = true
	}
	for _, want := range []string{"job_admitted", "job_started", "job_finished"} {
		if !names[want] {
			t.Fatalf("missing event %s in %v", want, pub.Events())
		}
	}
}

func TestStatusReflectsGateway(t *testing.T) {
	g := newTestGateway(t, Config{QueueCapacity: 5}, nil)
	st := g.Status()
	if st.Ready {
		t.Fatal("ready before worker start")
	}
	if st.QueueCapacity != 5 || st.QueueDepth != 0 {
		t.Fatalf("queue fields: %+v", st)
	}
	if !st.EngineReady || !st.TokenizerReady {
		t.Fatalf("sanity fields: %+v", st)
	}

	startWorker(t, g)
	deadline := time.Now().Add(time.Second)
	for !g.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("worker never became ready")
		}
		time.Sleep(time.Millisecond)
	}
	if !g.Status().Ready {
		t.Fatal("status not ready with worker running")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
	if g.Ready() {
		t.Fatal("still ready after stop")
	}
}
