package gateway

import (
	"context"
	"fmt"
	"time"
)

// Run is the worker loop. It is the only code path allowed to touch the
// engine; call it from exactly one goroutine for the life of the process.
// Run drains the admission queue in FIFO order, one job per cycle, and
// returns nil once ctx is done and the in-flight cycle has finished.
func (g *Gateway) Run(ctx context.Context) error {
	g.running.Store(true)
	defer g.running.Store(false)
	g.log.Info().
		Int("queue_capacity", g.queue.Capacity()).
		Dur("poll_interval", g.cfg.PollInterval).
		Msg("worker loop started")

	for {
		if ctx.Err() != nil {
			g.log.Info().Msg("worker loop stopped")
			return nil
		}
		g.setState(WorkerIdle)
		pj, ok := g.queue.TakeWait(ctx, g.cfg.PollInterval)
		if !ok {
			continue
		}
		g.process(ctx, pj)
	}
}

// process runs one full cycle for a single job. Each HTTP submission's own
// contexts are the batch unit: jobs are never merged across submissions,
// even when several are queued.
//
// All failure modes, including panics out of the engine or tokenizer, are
// absorbed here and converted into a terminal error result so the waiting
// caller is never left hanging and the loop survives for the next job.
func (g *Gateway) process(ctx context.Context, pj *pendingJob) {
	job := pj.job
	defer func() {
		if r := recover(); r != nil {
			err := ErrEngineFailure(job.ID, fmt.Errorf("panic: %v", r))
			g.log.Error().Str("job_id", job.ID).Msg(err.Error())
			g.publish(pj, Result{Err: err}, "panic")
		}
	}()

	g.setState(WorkerDraining)
	g.events.Publish(Event{Name: "job_started", JobID: job.ID, Fields: map[string]any{
		"contexts": len(job.Contexts),
		"queued":   time.Since(job.Submitted).String(),
	}})
	batch := g.encodeBatch(job)

	g.setState(WorkerComputing)
	params := SamplingParams{TopP: job.TopP, Temperature: job.Temp}
	start := time.Now()
	gen, err := g.engine.Generate(ctx, batch, job.GenTokens, params)
	dur := time.Since(start)
	engineDuration.Observe(dur.Seconds())
	if err != nil {
		if !IsDependencyUnavailable(err) {
			err = ErrEngineFailure(job.ID, err)
		}
		g.recordErr(err)
		g.log.Error().Str("job_id", job.ID).Dur("dur", dur).Err(err).Msg("engine call failed")
		g.publish(pj, Result{Err: err}, "engine_error")
		return
	}

	g.setState(WorkerPublishing)
	scored := g.extractScores(job, gen)
	g.log.Info().
		Str("job_id", job.ID).
		Int("rows", len(scored.Rows)).
		Dur("dur", dur).
		Msg("completion done")
	g.publish(pj, Result{Scored: scored}, "ok")
}

// publish delivers the job's single terminal result. A duplicate delivery is
// a programming invariant violation and is logged loudly rather than
// silently dropped; an abandoned receiver makes the send a harmless no-op.
func (g *Gateway) publish(pj *pendingJob, r Result, outcome string) {
	if err := pj.out.Send(r); err != nil {
		g.log.Error().Str("job_id", pj.job.ID).Err(err).Msg("router misuse: duplicate result delivery")
		return
	}
	if pj.out.Abandoned() {
		g.log.Warn().Str("job_id", pj.job.ID).Msg("caller gone before result, dropping")
	}
	if r.Err != nil {
		g.jobsFailed.Add(1)
	} else {
		g.jobsDone.Add(1)
	}
	jobsTotal.WithLabelValues(outcome).Inc()
	g.events.Publish(Event{Name: "job_finished", JobID: pj.job.ID, Fields: map[string]any{
		"outcome": outcome,
	}})
}
