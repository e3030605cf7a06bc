package gateway

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Gateway owns the admission queue and the single worker that is allowed to
// touch the compute engine. HTTP handlers talk to it only through Submit and
// Complete; the engine handle never leaves the worker loop.
type Gateway struct {
	cfg    Config
	queue  *AdmissionQueue
	engine Engine
	tok    Tokenizer
	log    zerolog.Logger
	events EventPublisher

	running atomic.Bool
	state   atomic.Int32

	jobsDone   atomic.Uint64
	jobsFailed atomic.Uint64
	rowsScored atomic.Uint64

	mu        sync.RWMutex
	lastErr   string
	startTime time.Time

	sanity SanityReport
}

// New constructs a Gateway around the given engine and tokenizer. Defaults
// are applied for unset Config fields; the worker is not started until Run.
func New(cfg Config, engine Engine, tok Tokenizer) *Gateway {
	cfg = cfg.withDefaults()
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	g := &Gateway{
		cfg:       cfg,
		queue:     newAdmissionQueue(cfg.QueueCapacity),
		engine:    engine,
		tok:       tok,
		log:       log,
		events:    cfg.Events,
		startTime: time.Now(),
	}
	g.state.Store(int32(WorkerIdle))
	g.sanity = g.SanityCheck()
	return g
}

// Ready reports whether the worker loop is live and draining the queue.
func (g *Gateway) Ready() bool { return g.running.Load() }

// WorkerState returns the worker loop's current lifecycle state.
func (g *Gateway) WorkerState() WorkerState { return WorkerState(g.state.Load()) }

// QueueDepth returns the number of jobs waiting for the worker.
func (g *Gateway) QueueDepth() int { return g.queue.Depth() }

// QueueCapacity returns the admission bound.
func (g *Gateway) QueueCapacity() int { return g.queue.Capacity() }

func (g *Gateway) setState(s WorkerState) {
	g.state.Store(int32(s))
	workerState.Set(float64(s))
}

func (g *Gateway) recordErr(err error) {
	g.mu.Lock()
	g.lastErr = err.Error()
	g.mu.Unlock()
}
