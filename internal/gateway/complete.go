package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"

	"evald/pkg/types"
)

// Submit validates job and admits it into the queue without blocking. On
// success it returns the single-use channel the job's result will arrive
// on; at capacity it fails immediately with a queue-full error so callers
// cannot pile up behind a slow worker.
func (g *Gateway) Submit(job Job) (*ResultChannel, error) {
	if err := validateJob(job, g.cfg.MaxGenTokens); err != nil {
		jobsTotal.WithLabelValues("rejected_invalid").Inc()
		return nil, err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Submitted = time.Now()
	pj := &pendingJob{job: job, out: newResultChannel(job.ID)}
	if err := g.queue.Submit(pj); err != nil {
		jobsTotal.WithLabelValues("rejected_full").Inc()
		g.log.Warn().Str("job_id", job.ID).Int("depth", g.queue.Depth()).Msg("admission rejected, queue full")
		return nil, err
	}
	g.events.Publish(Event{Name: "job_admitted", JobID: job.ID, Fields: map[string]any{
		"contexts": len(job.Contexts),
	}})
	return pj.out, nil
}

// CompleteJob submits job and blocks the calling goroutine until its
// terminal result arrives. The worker is never blocked by this wait. When
// Config.RequestTimeout is set the wait is bounded; on expiry the job is
// marked abandoned and the worker's eventual delivery is a no-op.
func (g *Gateway) CompleteJob(ctx context.Context, job Job) (ScoredResult, error) {
	out, err := g.Submit(job)
	if err != nil {
		return ScoredResult{}, err
	}
	if g.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()
	}
	res, err := out.Receive(ctx)
	if err != nil {
		jobsTotal.WithLabelValues("abandoned").Inc()
		return ScoredResult{}, err
	}
	if res.Err != nil {
		return ScoredResult{}, res.Err
	}
	return res.Scored, nil
}

// Complete is the wire-level entry point used by the HTTP layer. Row order
// in the response mirrors the request's context order.
func (g *Gateway) Complete(ctx context.Context, req types.CompleteRequest) (types.CompleteResponse, error) {
	job := Job{
		Contexts:  req.Contexts,
		Targets:   req.Targets,
		TopP:      req.TopP,
		Temp:      req.Temp,
		GenTokens: req.GenTokens,
	}
	scored, err := g.CompleteJob(ctx, job)
	if err != nil {
		return types.CompleteResponse{}, err
	}
	resp := types.CompleteResponse{Completion: make([]types.CompletionPair, len(scored.Rows))}
	for i, row := range scored.Rows {
		resp.Completion[i] = types.CompletionPair{row.GeneratedTokens, row.TargetTokens}
	}
	return resp, nil
}
