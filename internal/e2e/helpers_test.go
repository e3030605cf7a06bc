package e2e

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"evald/internal/gateway"
	"evald/internal/httpapi"
)

// byteTok is a deterministic tokenizer: one token per byte.
type byteTok struct{}

func (byteTok) Encode(text string) ([]int, error) {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids, nil
}

func (byteTok) Decode(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(rune(id))
	}
	return out
}

// slowEngine emits genTokens 'a's per row after an optional fixed delay and
// can fail specific calls (1-based).
type slowEngine struct {
	mu         sync.Mutex
	calls      int
	delay      time.Duration
	failOnCall map[int]error
}

func (e *slowEngine) Generate(ctx context.Context, batch gateway.EncodedBatch, genTokens int, params gateway.SamplingParams) (gateway.Generation, error) {
	e.mu.Lock()
	e.calls++
	call := e.calls
	delay := e.delay
	e.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return gateway.Generation{}, ctx.Err()
		}
	}
	if err := e.failOnCall[call]; err != nil {
		return gateway.Generation{}, err
	}
	gen := gateway.Generation{
		TokenIDs: make([][]int, len(batch.Tokens)),
		LogProbs: make([][][]float32, len(batch.Tokens)),
	}
	for i := range batch.Tokens {
		ids := make([]int, genTokens)
		dists := make([][]float32, genTokens)
		for t := 0; t < genTokens; t++ {
			ids[t] = 'a'
			dist := make([]float32, 256)
			dist['a'] = -0.5
			dists[t] = dist
		}
		gen.TokenIDs[i] = ids
		gen.LogProbs[i] = dists
	}
	return gen, nil
}

var errFault = errors.New("injected engine fault")

// newServer wires a full in-process stack: gateway + worker + HTTP mux.
func newServer(t *testing.T, cfg gateway.Config, eng gateway.Engine) (*httptest.Server, *gateway.Gateway) {
	t.Helper()
	if eng == nil {
		eng = &slowEngine{}
	}
	if cfg.SeqLen == 0 {
		cfg.SeqLen = 32
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	gw := gateway.New(cfg, eng, byteTok{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = gw.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	srv := httptest.NewServer(httpapi.NewMux(gw))
	t.Cleanup(srv.Close)
	return srv, gw
}
