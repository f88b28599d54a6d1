package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/tanker327/polling-service-manager/job"
)

// Named entry types pair a hook implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type jobStartedEntry struct {
	name string
	hook JobStarted
}

type jobTriggeredEntry struct {
	name string
	hook JobTriggered
}

type jobRetryingEntry struct {
	name string
	hook JobRetrying
}

type jobCompletedEntry struct {
	name string
	hook JobCompleted
}

type jobFailedEntry struct {
	name string
	hook JobFailed
}

type jobAbortedEntry struct {
	name string
	hook JobAborted
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	jobStarted   []jobStartedEntry
	jobTriggered []jobTriggeredEntry
	jobRetrying  []jobRetryingEntry
	jobCompleted []jobCompletedEntry
	jobFailed    []jobFailedEntry
	jobAborted   []jobAbortedEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(JobStarted); ok {
		r.jobStarted = append(r.jobStarted, jobStartedEntry{name, e})
	}
	if e, ok := h.(JobTriggered); ok {
		r.jobTriggered = append(r.jobTriggered, jobTriggeredEntry{name, e})
	}
	if e, ok := h.(JobRetrying); ok {
		r.jobRetrying = append(r.jobRetrying, jobRetryingEntry{name, e})
	}
	if e, ok := h.(JobCompleted); ok {
		r.jobCompleted = append(r.jobCompleted, jobCompletedEntry{name, e})
	}
	if e, ok := h.(JobFailed); ok {
		r.jobFailed = append(r.jobFailed, jobFailedEntry{name, e})
	}
	if e, ok := h.(JobAborted); ok {
		r.jobAborted = append(r.jobAborted, jobAbortedEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitJobStarted notifies all hooks that implement JobStarted.
func (r *Registry) EmitJobStarted(ctx context.Context, j *job.Job) {
	for _, e := range r.jobStarted {
		if err := e.hook.OnJobStarted(ctx, j); err != nil {
			r.logHookError("OnJobStarted", e.name, err)
		}
	}
}

// EmitJobTriggered notifies all hooks that implement JobTriggered.
func (r *Registry) EmitJobTriggered(ctx context.Context, j *job.Job) {
	for _, e := range r.jobTriggered {
		if err := e.hook.OnJobTriggered(ctx, j); err != nil {
			r.logHookError("OnJobTriggered", e.name, err)
		}
	}
}

// EmitJobRetrying notifies all hooks that implement JobRetrying.
func (r *Registry) EmitJobRetrying(ctx context.Context, j *job.Job, attempt int, delay time.Duration) {
	for _, e := range r.jobRetrying {
		if err := e.hook.OnJobRetrying(ctx, j, attempt, delay); err != nil {
			r.logHookError("OnJobRetrying", e.name, err)
		}
	}
}

// EmitJobCompleted notifies all hooks that implement JobCompleted.
func (r *Registry) EmitJobCompleted(ctx context.Context, j *job.Job, elapsed time.Duration) {
	for _, e := range r.jobCompleted {
		if err := e.hook.OnJobCompleted(ctx, j, elapsed); err != nil {
			r.logHookError("OnJobCompleted", e.name, err)
		}
	}
}

// EmitJobFailed notifies all hooks that implement JobFailed.
func (r *Registry) EmitJobFailed(ctx context.Context, j *job.Job, jobErr error) {
	for _, e := range r.jobFailed {
		if err := e.hook.OnJobFailed(ctx, j, jobErr); err != nil {
			r.logHookError("OnJobFailed", e.name, err)
		}
	}
}

// EmitJobAborted notifies all hooks that implement JobAborted.
func (r *Registry) EmitJobAborted(ctx context.Context, j *job.Job) {
	for _, e := range r.jobAborted {
		if err := e.hook.OnJobAborted(ctx, j); err != nil {
			r.logHookError("OnJobAborted", e.name, err)
		}
	}
}

// logHookError logs a hook failure. Hook errors are contained here and
// never alter job state or propagate to the manager.
func (r *Registry) logHookError(event, name string, err error) {
	r.logger.Warn("hook returned error",
		slog.String("event", event),
		slog.String("hook", name),
		slog.String("error", err.Error()),
	)
}
