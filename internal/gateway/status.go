package gateway

import (
	"time"

	"evald/pkg/types"
)

// Status builds a detailed status response for /status.
func (g *Gateway) Status() types.StatusResponse {
	g.mu.RLock()
	lastErr := g.lastErr
	g.mu.RUnlock()
	return types.StatusResponse{
		Ready:          g.running.Load(),
		WorkerState:    g.WorkerState().String(),
		QueueDepth:     g.queue.Depth(),
		QueueCapacity:  g.queue.Capacity(),
		JobsCompleted:  g.jobsDone.Load(),
		JobsFailed:     g.jobsFailed.Load(),
		RowsScored:     g.rowsScored.Load(),
		EngineReady:    g.sanity.EngineReady,
		TokenizerReady: g.sanity.TokenizerReady,
		LastError:      lastErr,
		UptimeSeconds:  int64(time.Since(g.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
}
