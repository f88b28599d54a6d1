package hook_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/tanker327/polling-service-manager/hook"
	"github.com/tanker327/polling-service-manager/id"
	"github.com/tanker327/polling-service-manager/job"
)

// allEventsHook implements every lifecycle event for testing.
type allEventsHook struct {
	calls []string
}

func (h *allEventsHook) Name() string { return "all-events" }

func (h *allEventsHook) OnJobStarted(_ context.Context, _ *job.Job) error {
	h.calls = append(h.calls, "OnJobStarted")
	return nil
}

func (h *allEventsHook) OnJobTriggered(_ context.Context, _ *job.Job) error {
	h.calls = append(h.calls, "OnJobTriggered")
	return nil
}

func (h *allEventsHook) OnJobRetrying(_ context.Context, _ *job.Job, _ int, _ time.Duration) error {
	h.calls = append(h.calls, "OnJobRetrying")
	return nil
}

func (h *allEventsHook) OnJobCompleted(_ context.Context, _ *job.Job, _ time.Duration) error {
	h.calls = append(h.calls, "OnJobCompleted")
	return nil
}

func (h *allEventsHook) OnJobFailed(_ context.Context, _ *job.Job, _ error) error {
	h.calls = append(h.calls, "OnJobFailed")
	return nil
}

func (h *allEventsHook) OnJobAborted(_ context.Context, _ *job.Job) error {
	h.calls = append(h.calls, "OnJobAborted")
	return nil
}

// failedOnlyHook only implements the JobFailed event.
type failedOnlyHook struct {
	calls []string
}

func (h *failedOnlyHook) Name() string { return "failed-only" }

func (h *failedOnlyHook) OnJobFailed(_ context.Context, _ *job.Job, _ error) error {
	h.calls = append(h.calls, "OnJobFailed")
	return nil
}

// erroringHook returns an error from every event it implements.
type erroringHook struct{}

func (h *erroringHook) Name() string { return "erroring" }

func (h *erroringHook) OnJobCompleted(_ context.Context, _ *job.Job, _ time.Duration) error {
	return errors.New("hook exploded")
}

func newTestJob() *job.Job {
	return &job.Job{
		ID:    id.NewJobID(),
		Name:  "fetch-status",
		State: job.StatePolling,
	}
}

func TestRegistry_EmitsAllEvents(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	h := &allEventsHook{}
	r.Register(h)

	ctx := context.Background()
	j := newTestJob()

	r.EmitJobStarted(ctx, j)
	r.EmitJobTriggered(ctx, j)
	r.EmitJobRetrying(ctx, j, 1, time.Second)
	r.EmitJobCompleted(ctx, j, time.Millisecond)
	r.EmitJobFailed(ctx, j, errors.New("boom"))
	r.EmitJobAborted(ctx, j)

	expected := []string{
		"OnJobStarted", "OnJobTriggered", "OnJobRetrying",
		"OnJobCompleted", "OnJobFailed", "OnJobAborted",
	}
	if len(h.calls) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(h.calls), h.calls)
	}
	for i, want := range expected {
		if h.calls[i] != want {
			t.Errorf("calls[%d] = %q, want %q", i, h.calls[i], want)
		}
	}
}

func TestRegistry_PartialHookOnlyGetsItsEvents(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	h := &failedOnlyHook{}
	r.Register(h)

	ctx := context.Background()
	j := newTestJob()

	r.EmitJobStarted(ctx, j)
	r.EmitJobCompleted(ctx, j, time.Millisecond)
	r.EmitJobFailed(ctx, j, errors.New("boom"))

	if len(h.calls) != 1 || h.calls[0] != "OnJobFailed" {
		t.Errorf("expected only OnJobFailed, got %v", h.calls)
	}
}

func TestRegistry_HookErrorIsContained(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	r.Register(&erroringHook{})
	after := &allEventsHook{}
	r.Register(after)

	// Must not panic, and later hooks still run.
	r.EmitJobCompleted(context.Background(), newTestJob(), time.Millisecond)

	if len(after.calls) != 1 || after.calls[0] != "OnJobCompleted" {
		t.Errorf("expected later hook to run, got %v", after.calls)
	}
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	first := &allEventsHook{}
	second := &allEventsHook{}
	r.Register(first)
	r.Register(second)

	if got := len(r.Hooks()); got != 2 {
		t.Fatalf("expected 2 hooks, got %d", got)
	}
}
