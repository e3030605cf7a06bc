package gateway

import (
	"math"
	"testing"
)

func TestValidateJob(t *testing.T) {
	valid := Job{Contexts: []string{"a"}, Targets: []string{"b"}, TopP: 0.9, Temp: 0.7, GenTokens: 4}
	if err := validateJob(valid, 512); err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Job)
	}{
		{"empty contexts", func(j *Job) { j.Contexts = nil; j.Targets = nil }},
		{"length mismatch", func(j *Job) { j.Targets = []string{"b", "c"} }},
		{"top_p negative", func(j *Job) { j.TopP = -0.1 }},
		{"top_p above one", func(j *Job) { j.TopP = 1.1 }},
		{"top_p NaN", func(j *Job) { j.TopP = math.NaN() }},
		{"temp negative", func(j *Job) { j.Temp = -1 }},
		{"temp NaN", func(j *Job) { j.Temp = math.NaN() }},
		{"temp infinite", func(j *Job) { j.Temp = math.Inf(1) }},
		{"gen_tokens zero", func(j *Job) { j.GenTokens = 0 }},
		{"gen_tokens above limit", func(j *Job) { j.GenTokens = 513 }},
	}
	for _, c := range cases {
		j := valid
		j.Contexts = append([]string(nil), valid.Contexts...)
		j.Targets = append([]string(nil), valid.Targets...)
		c.mutate(&j)
		err := validateJob(j, 512)
		if !IsInvalidJob(err) {
			t.Fatalf("%s: expected invalid-job error, got %v", c.name, err)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.SeqLen != defaultSeqLen || c.QueueCapacity != defaultQueueCapacity {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.PollInterval != defaultPollInterval || c.MaxGenTokens != defaultMaxGenTokens {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Events == nil {
		t.Fatal("default event publisher not set")
	}
	if c.RequestTimeout != 0 {
		t.Fatal("request timeout should default to unbounded")
	}
}

func TestWorkerStateString(t *testing.T) {
	for state, want := range map[WorkerState]string{
		WorkerIdle:       "idle",
		WorkerDraining:   "draining",
		WorkerComputing:  "computing",
		WorkerPublishing: "publishing",
		WorkerState(99):  "unknown",
	} {
		if got := state.String(); got != want {
			t.Fatalf("state %d: got %q want %q", state, got, want)
		}
	}
}
