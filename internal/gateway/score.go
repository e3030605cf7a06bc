package gateway

// extractScores turns raw engine output into the per-row result pairs.
//
// For each row the engine's own continuation is decoded to token strings and
// the log-probability the engine assigned to each token it actually chose is
// selected from the per-position vocabulary distributions. The target string
// is tokenized independently and reported alongside: the result carries both
// traces side by side, it does not force-decode the target through the
// engine.
func (g *Gateway) extractScores(job Job, gen Generation) ScoredResult {
	rows := make([]RowResult, len(job.Contexts))
	for i := range rows {
		var ids []int
		if i < len(gen.TokenIDs) {
			ids = gen.TokenIDs[i]
		}
		chosen := make([]float64, 0, len(ids))
		for t, id := range ids {
			if i >= len(gen.LogProbs) || t >= len(gen.LogProbs[i]) {
				break
			}
			dist := gen.LogProbs[i][t]
			if id < 0 || id >= len(dist) {
				continue
			}
			chosen = append(chosen, float64(dist[id]))
		}

		targetIDs, err := g.tok.Encode(job.Targets[i])
		if err != nil {
			encodeFailures.Inc()
			g.log.Warn().
				Str("job_id", job.ID).
				Int("row", i).
				Err(err).
				Msg("target encoding failed, reporting empty target trace")
			targetIDs = nil
		}

		rows[i] = RowResult{
			GeneratedTokens: g.tok.Decode(ids),
			TargetTokens:    g.tok.Decode(targetIDs),
			TokenLogProbs:   chosen,
		}
		g.log.Debug().
			Str("job_id", job.ID).
			Int("row", i).
			Floats64("token_log_probs", chosen).
			Msg("row scored")
		g.rowsScored.Add(1)
		rowsScored.Inc()
	}
	return ScoredResult{JobID: job.ID, Rows: rows}
}
