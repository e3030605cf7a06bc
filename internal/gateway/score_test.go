package gateway

import (
	"testing"
)

func TestExtractScoresSelectsChosenTokenLogProbs(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	dist0 := make([]float32, 10)
	dist1 := make([]float32, 10)
	for i := range dist0 {
		dist0[i] = -9
		dist1[i] = -9
	}
	dist0[3] = -0.25
	dist1[5] = -1.5
	gen := Generation{
		TokenIDs: [][]int{{3, 5}},
		LogProbs: [][][]float32{{dist0, dist1}},
	}
	res := g.extractScores(testJob([]string{"ctx"}, []string{"ab"}, 2), gen)
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d", len(res.Rows))
	}
	row := res.Rows[0]
	if len(row.TokenLogProbs) != 2 || row.TokenLogProbs[0] != -0.25 || row.TokenLogProbs[1] != -1.5 {
		t.Fatalf("chosen log probs %v", row.TokenLogProbs)
	}
	if len(row.GeneratedTokens) != 2 {
		t.Fatalf("generated tokens %v", row.GeneratedTokens)
	}
	// target tokenized independently, byte per token
	if len(row.TargetTokens) != 2 || row.TargetTokens[0] != "a" || row.TargetTokens[1] != "b" {
		t.Fatalf("target tokens %v", row.TargetTokens)
	}
}

func TestExtractScoresPreservesRowOrder(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	gen := Generation{
		TokenIDs: [][]int{{'x'}, {'y'}, {'z'}},
		LogProbs: [][][]float32{},
	}
	res := g.extractScores(testJob(
		[]string{"c1", "c2", "c3"},
		[]string{"t1", "t2", "t3"}, 1), gen)
	if len(res.Rows) != 3 {
		t.Fatalf("rows=%d", len(res.Rows))
	}
	for i, want := range []string{"x", "y", "z"} {
		if res.Rows[i].GeneratedTokens[0] != want {
			t.Fatalf("row %d generated %v", i, res.Rows[i].GeneratedTokens)
		}
	}
}

func TestExtractScoresTargetEncodeFailure(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	g.tok = &byteTokenizer{failOn: map[string]bool{"bad": true}}
	gen := Generation{TokenIDs: [][]int{{'x'}}}
	res := g.extractScores(testJob([]string{"c"}, []string{"bad"}, 1), gen)
	if len(res.Rows[0].TargetTokens) != 0 {
		t.Fatalf("expected empty target trace, got %v", res.Rows[0].TargetTokens)
	}
	if res.Rows[0].GeneratedTokens[0] != "x" {
		t.Fatalf("generated trace lost: %v", res.Rows[0].GeneratedTokens)
	}
}

func TestExtractScoresOutOfRangeTokenID(t *testing.T) {
	g := newTestGateway(t, Config{}, nil)
	dist := []float32{-1, -2}
	gen := Generation{
		TokenIDs: [][]int{{99}},
		LogProbs: [][][]float32{{dist}},
	}
	res := g.extractScores(testJob([]string{"c"}, []string{"t"}, 1), gen)
	if len(res.Rows[0].TokenLogProbs) != 0 {
		t.Fatalf("out-of-range id must not index the distribution: %v", res.Rows[0].TokenLogProbs)
	}
}
