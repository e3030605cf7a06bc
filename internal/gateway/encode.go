package gateway

// encodeBatch converts a job's contexts into the fixed-width batch the
// engine consumes. Every row is SeqLen wide: short rows are left-padded with
// the pad token, long rows keep only their last SeqLen ids so the most
// recent context survives truncation.
//
// A tokenizer failure on one context must not starve its siblings: the row
// is left all-pad with length 0 and the rest of the job proceeds.
func (g *Gateway) encodeBatch(job Job) EncodedBatch {
	seqLen := g.cfg.SeqLen
	n := len(job.Contexts)
	batch := EncodedBatch{
		Tokens:  make([][]uint32, n),
		Lengths: make([]int, n),
	}
	for i, ctx := range job.Contexts {
		row := make([]uint32, seqLen)
		for j := range row {
			row[j] = g.cfg.PadTokenID
		}
		batch.Tokens[i] = row

		ids, err := g.tok.Encode(ctx)
		if err != nil {
			encodeFailures.Inc()
			g.log.Warn().
				Str("job_id", job.ID).
				Int("row", i).
				Err(err).
				Msg("context encoding failed, substituting empty row")
			continue
		}
		if len(ids) > seqLen {
			ids = ids[len(ids)-seqLen:]
		}
		off := seqLen - len(ids)
		for j, id := range ids {
			row[off+j] = uint32(id)
		}
		batch.Lengths[i] = len(ids)
	}
	return batch
}
