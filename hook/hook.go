// Package hook defines the lifecycle hook system for the polling manager.
// Hooks are notified of lifecycle events (job started, retrying, completed,
// failed, aborted) and can react to them — logging, metrics, host
// notifications, etc.
//
// Each lifecycle event is a separate interface so hooks opt in only to the
// events they care about.
package hook

import (
	"context"
	"time"

	"github.com/tanker327/polling-service-manager/job"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// JobStarted is called when a job is created and its trigger begins.
type JobStarted interface {
	OnJobStarted(ctx context.Context, j *job.Job) error
}

// JobTriggered is called after the trigger succeeds and the poll loop starts.
type JobTriggered interface {
	OnJobTriggered(ctx context.Context, j *job.Job) error
}

// JobRetrying is called when a poll attempt reports "not done" and the
// next attempt is scheduled.
type JobRetrying interface {
	OnJobRetrying(ctx context.Context, j *job.Job, attempt int, delay time.Duration) error
}

// JobCompleted is called after a job finishes successfully.
type JobCompleted interface {
	OnJobCompleted(ctx context.Context, j *job.Job, elapsed time.Duration) error
}

// JobFailed is called when a job fails terminally.
type JobFailed interface {
	OnJobFailed(ctx context.Context, j *job.Job, err error) error
}

// JobAborted is called when a job is explicitly cancelled.
type JobAborted interface {
	OnJobAborted(ctx context.Context, j *job.Job) error
}
