package evalctl

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"evald/pkg/types"
)

func smokeRequest(cfg *Config) types.CompleteRequest {
	return types.CompleteRequest{
		Contexts:  []string{"The cat sat on the"},
		Targets:   []string{"mat"},
		TopP:      cfg.TopP,
		Temp:      cfg.Temp,
		GenTokens: cfg.GenTokens,
	}
}

// fnSmoke submits one single-context job and prints the returned traces.
func fnSmoke(cfg *Config) error {
	c := NewClient(cfg.Addr)
	info("submitting smoke job to %s", cfg.Addr)
	start := time.Now()
	resp, status, err := c.Complete(context.Background(), smokeRequest(cfg))
	if err != nil {
		return fmt.Errorf("smoke failed (status %d): %w", status, err)
	}
	info("completed in %s (%d rows)", time.Since(start).Round(time.Millisecond), len(resp.Completion))
	for i, pair := range resp.Completion {
		info("row %d generated: %s", i, strings.Join(pair[0], ""))
		info("row %d target:    %s", i, strings.Join(pair[1], ""))
	}
	return nil
}

// benchOutcome aggregates one bench run.
type benchOutcome struct {
	Latencies []time.Duration
	OK        int
	Rejected  int // 503 queue-full
	Failed    int
}

// fnBench fans out cfg.Requests single-context jobs with cfg.Concurrency
// in-flight and reports latency percentiles plus backpressure counts.
func fnBench(cfg *Config) error {
	c := NewClient(cfg.Addr)
	info("bench: %d requests, concurrency %d, gen_tokens %d", cfg.Requests, cfg.Concurrency, cfg.GenTokens)

	var mu sync.Mutex
	out := benchOutcome{}
	g := new(errgroup.Group)
	g.SetLimit(cfg.Concurrency)
	start := time.Now()
	for i := 0; i < cfg.Requests; i++ {
		g.Go(func() error {
			t0 := time.Now()
			_, status, err := c.Complete(context.Background(), smokeRequest(cfg))
			lat := time.Since(t0)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				out.OK++
				out.Latencies = append(out.Latencies, lat)
			case status == 503:
				out.Rejected++
			default:
				out.Failed++
				debug("request failed: %v", err)
			}
			// bench tolerates individual failures; report them at the end
			return nil
		})
	}
	_ = g.Wait()
	total := time.Since(start)

	info("bench done in %s: ok=%d rejected=%d failed=%d", total.Round(time.Millisecond), out.OK, out.Rejected, out.Failed)
	if len(out.Latencies) > 0 {
		info("latency p50=%s p90=%s p99=%s",
			percentile(out.Latencies, 0.50).Round(time.Millisecond),
			percentile(out.Latencies, 0.90).Round(time.Millisecond),
			percentile(out.Latencies, 0.99).Round(time.Millisecond))
	}
	if out.Failed > 0 {
		return fmt.Errorf("%d requests failed", out.Failed)
	}
	return nil
}

// percentile returns the p-th percentile (0 < p <= 1) of latencies using
// nearest-rank on a sorted copy.
func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rank := int(p*float64(len(sorted))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

// fnStatus fetches and pretty-prints /status.
func fnStatus(cfg *Config) error {
	c := NewClient(cfg.Addr)
	st, err := c.Status(context.Background())
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
