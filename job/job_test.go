package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tanker327/polling-service-manager/job"
)

func TestStateIsTerminal(t *testing.T) {
	tests := []struct {
		state    job.State
		terminal bool
	}{
		{job.StatePending, false},
		{job.StatePolling, false},
		{job.StateCompleted, true},
		{job.StateFailed, true},
		{job.StateAborted, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("State(%q).IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
	}
}

func TestStatusHelpers(t *testing.T) {
	done := job.Done(42)
	if !done.Done || done.Result == nil || *done.Result != 42 {
		t.Errorf("Done(42) = %+v", done)
	}

	notDone := job.NotDone[int]()
	if notDone.Done || notDone.Result != nil {
		t.Errorf("NotDone() = %+v", notDone)
	}
}

func TestEraseRoundTrip(t *testing.T) {
	def := job.NewDefinition("export-report",
		func(_ context.Context) (string, error) { return "trk-1", nil },
		func(_ context.Context, triggerResult string) (job.Status[int], error) {
			if triggerResult != "trk-1" {
				t.Errorf("poll received trigger result %q, want %q", triggerResult, "trk-1")
			}
			return job.Done(42), nil
		},
		func(_ context.Context, pollResult int) (string, error) {
			if pollResult != 42 {
				t.Errorf("complete received %d, want 42", pollResult)
			}
			return "ok:42", nil
		},
	)
	var successArg string
	def.OnSuccess = func(v string) { successArg = v }

	h := job.Erase(def)
	ctx := context.Background()

	trk, err := h.Trigger(ctx)
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if trk != "trk-1" {
		t.Errorf("trigger result = %v, want %q", trk, "trk-1")
	}

	raw, err := h.Poll(ctx, trk)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if !raw.Done || !raw.HasResult || raw.Result != 42 {
		t.Errorf("poll status = %+v, want done with result 42", raw)
	}

	final, err := h.Complete(ctx, raw.Result)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if final != "ok:42" {
		t.Errorf("final = %v, want %q", final, "ok:42")
	}

	h.OnSuccess(final)
	if successArg != "ok:42" {
		t.Errorf("OnSuccess received %q, want %q", successArg, "ok:42")
	}
}

func TestEraseDoneWithoutResult(t *testing.T) {
	def := job.NewDefinition("sparse",
		func(_ context.Context) (string, error) { return "trk", nil },
		func(_ context.Context, _ string) (job.Status[int], error) {
			return job.Status[int]{Done: true}, nil
		},
		func(_ context.Context, v int) (int, error) { return v, nil },
	)

	raw, err := job.Erase(def).Poll(context.Background(), "trk")
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if !raw.Done {
		t.Error("Done flag lost in erasure")
	}
	if raw.HasResult {
		t.Error("HasResult = true for a nil result")
	}
}

func TestErasePropagatesError(t *testing.T) {
	want := errors.New("poll broke")
	def := job.NewDefinition("broken",
		func(_ context.Context) (string, error) { return "trk", nil },
		func(_ context.Context, _ string) (job.Status[int], error) {
			return job.NotDone[int](), want
		},
		func(_ context.Context, v int) (int, error) { return v, nil },
	)

	_, err := job.Erase(def).Poll(context.Background(), "trk")
	if !errors.Is(err, want) {
		t.Errorf("poll error = %v, want %v", err, want)
	}
}

func TestDefinitionOptions(t *testing.T) {
	def := job.NewDefinition("tuned",
		func(_ context.Context) (string, error) { return "", nil },
		func(_ context.Context, _ string) (job.Status[int], error) { return job.NotDone[int](), nil },
		func(_ context.Context, v int) (int, error) { return v, nil },
		job.WithMaxRetries(2),
		job.WithStageTimeout(30*time.Second),
	)

	if def.Opts.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", def.Opts.MaxRetries)
	}
	if def.Opts.StageTimeout != 30*time.Second {
		t.Errorf("StageTimeout = %v, want 30s", def.Opts.StageTimeout)
	}

	defaults := job.NewDefinition("plain",
		func(_ context.Context) (string, error) { return "", nil },
		func(_ context.Context, _ string) (job.Status[int], error) { return job.NotDone[int](), nil },
		func(_ context.Context, v int) (int, error) { return v, nil },
	)
	if defaults.Opts.MaxRetries != job.UseManagerDefault {
		t.Errorf("default MaxRetries = %d, want UseManagerDefault", defaults.Opts.MaxRetries)
	}
}

func TestSnapshot(t *testing.T) {
	started := time.Now().UTC()
	j := &job.Job{
		Name:      "snap",
		State:     job.StatePolling,
		StartedAt: &started,
	}

	snap := j.Snapshot()
	snap.State = job.StateFailed
	*snap.StartedAt = snap.StartedAt.Add(time.Hour)

	if j.State != job.StatePolling {
		t.Error("mutating the snapshot changed the original state")
	}
	if !j.StartedAt.Equal(started) {
		t.Error("mutating the snapshot changed the original StartedAt")
	}
}
