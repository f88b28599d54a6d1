package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/tanker327/polling-service-manager/hook"
	"github.com/tanker327/polling-service-manager/job"
)

// Compile-time interface checks.
var (
	_ hook.Hook         = (*LoggingHook)(nil)
	_ hook.JobStarted   = (*LoggingHook)(nil)
	_ hook.JobTriggered = (*LoggingHook)(nil)
	_ hook.JobRetrying  = (*LoggingHook)(nil)
	_ hook.JobCompleted = (*LoggingHook)(nil)
	_ hook.JobFailed    = (*LoggingHook)(nil)
	_ hook.JobAborted   = (*LoggingHook)(nil)
)

// LoggingHook logs every lifecycle transition through a slog.Logger.
// The manager already logs its own internals; this hook is for hosts
// that want lifecycle logging on a separate logger or level.
type LoggingHook struct {
	logger *slog.Logger
}

// NewLoggingHook creates a LoggingHook writing to the given logger.
func NewLoggingHook(logger *slog.Logger) *LoggingHook {
	return &LoggingHook{logger: logger}
}

// Name implements hook.Hook.
func (h *LoggingHook) Name() string { return "observability-logging" }

// OnJobStarted implements hook.JobStarted.
func (h *LoggingHook) OnJobStarted(_ context.Context, j *job.Job) error {
	h.logger.Info("job started",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
	)
	return nil
}

// OnJobTriggered implements hook.JobTriggered.
func (h *LoggingHook) OnJobTriggered(_ context.Context, j *job.Job) error {
	h.logger.Info("job triggered, polling",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
	)
	return nil
}

// OnJobRetrying implements hook.JobRetrying.
func (h *LoggingHook) OnJobRetrying(_ context.Context, j *job.Job, attempt int, delay time.Duration) error {
	h.logger.Debug("job polling again",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.Int("attempt", attempt),
		slog.Duration("delay", delay),
	)
	return nil
}

// OnJobCompleted implements hook.JobCompleted.
func (h *LoggingHook) OnJobCompleted(_ context.Context, j *job.Job, elapsed time.Duration) error {
	h.logger.Info("job completed",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.Duration("elapsed", elapsed),
	)
	return nil
}

// OnJobFailed implements hook.JobFailed.
func (h *LoggingHook) OnJobFailed(_ context.Context, j *job.Job, err error) error {
	h.logger.Error("job failed",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.Int("retry_count", j.RetryCount),
		slog.String("error", err.Error()),
	)
	return nil
}

// OnJobAborted implements hook.JobAborted.
func (h *LoggingHook) OnJobAborted(_ context.Context, j *job.Job) error {
	h.logger.Warn("job aborted",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
	)
	return nil
}
