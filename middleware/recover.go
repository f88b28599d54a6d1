package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/tanker327/polling-service-manager/job"
)

// Recover returns middleware that recovers from panics in the stage chain.
// Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("stage panicked",
					slog.String("job_name", j.Name),
					slog.String("job_id", j.ID.String()),
					slog.String("stage", string(j.Stage)),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in %s stage of job %s: %v", j.Stage, j.Name, r)
			}
		}()
		return next(ctx)
	}
}
