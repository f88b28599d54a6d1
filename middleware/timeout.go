package middleware

import (
	"context"
	"log/slog"

	"github.com/tanker327/polling-service-manager/job"
)

// Timeout returns middleware that enforces a per-stage execution deadline.
// If the job has a non-zero StageTimeout, a context.WithTimeout wraps the
// stage call. When the deadline is exceeded the context is cancelled and
// the stage function should return context.DeadlineExceeded.
func Timeout(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		if j.StageTimeout > 0 {
			logger.Debug("stage timeout set",
				slog.String("job_id", j.ID.String()),
				slog.String("stage", string(j.Stage)),
				slog.Duration("timeout", j.StageTimeout),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, j.StageTimeout)
			defer cancel()
		}
		return next(ctx)
	}
}
