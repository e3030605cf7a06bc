package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// byteTokenizer maps one token per byte so encode/decode round-trip exactly.
type byteTokenizer struct {
	failOn map[string]bool
}

func (f *byteTokenizer) Encode(text string) ([]int, error) {
	if f.failOn[text] {
		return nil, errors.New("cannot encode")
	}
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids, nil
}

func (f *byteTokenizer) Decode(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(rune(id))
	}
	return out
}

const fakeVocabSize = 256

// scriptedEngine produces deterministic output and can be told to fail,
// panic, or stall on specific calls (1-based).
type scriptedEngine struct {
	mu          sync.Mutex
	calls       int
	delay       time.Duration
	failOnCall  map[int]error
	panicOnCall map[int]bool
}

func (e *scriptedEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *scriptedEngine) Generate(ctx context.Context, batch EncodedBatch, genTokens int, params SamplingParams) (Generation, error) {
	e.mu.Lock()
	e.calls++
	call := e.calls
	delay := e.delay
	e.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return Generation{}, ctx.Err()
		}
	}
	if e.panicOnCall[call] {
		panic("scripted engine panic")
	}
	if err := e.failOnCall[call]; err != nil {
		return Generation{}, err
	}

	gen := Generation{
		TokenIDs: make([][]int, len(batch.Tokens)),
		LogProbs: make([][][]float32, len(batch.Tokens)),
	}
	for i := range batch.Tokens {
		ids := make([]int, genTokens)
		dists := make([][]float32, genTokens)
		for t := 0; t < genTokens; t++ {
			ids[t] = 'a' + t%26
			dist := make([]float32, fakeVocabSize)
			for v := range dist {
				dist[v] = -10
			}
			dist[ids[t]] = -0.5
			dists[t] = dist
		}
		gen.TokenIDs[i] = ids
		gen.LogProbs[i] = dists
	}
	return gen, nil
}

func newTestGateway(t *testing.T, cfg Config, engine Engine) *Gateway {
	t.Helper()
	if engine == nil {
		engine = &scriptedEngine{}
	}
	if cfg.SeqLen == 0 {
		cfg.SeqLen = 16
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	return New(cfg, engine, &byteTokenizer{})
}

// startWorker runs the worker loop for the duration of the test.
func startWorker(t *testing.T, g *Gateway) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = g.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func testJob(contexts, targets []string, genTokens int) Job {
	return Job{Contexts: contexts, Targets: targets, TopP: 0.5, Temp: 0.5, GenTokens: genTokens}
}
