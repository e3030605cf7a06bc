package gateway

import (
	"fmt"
	"math"
)

// validateJob enforces the admission invariants before a job may be queued.
// Rejected jobs never consume queue capacity.
func validateJob(job Job, maxGenTokens int) error {
	if len(job.Contexts) == 0 {
		return ErrInvalidJob("contexts required")
	}
	if len(job.Contexts) != len(job.Targets) {
		return ErrInvalidJob(fmt.Sprintf("contexts and targets must have equal length (got %d and %d)",
			len(job.Contexts), len(job.Targets)))
	}
	// The comparisons are written so NaN fails them.
	if !(job.TopP >= 0 && job.TopP <= 1) {
		return ErrInvalidJob("top_p must be in [0,1]")
	}
	if !(job.Temp >= 0) || math.IsInf(job.Temp, 1) {
		return ErrInvalidJob("temp must be finite and >= 0")
	}
	if job.GenTokens < 1 {
		return ErrInvalidJob("gen_tokens must be >= 1")
	}
	if job.GenTokens > maxGenTokens {
		return ErrInvalidJob(fmt.Sprintf("gen_tokens must be <= %d", maxGenTokens))
	}
	return nil
}
