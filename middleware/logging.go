package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/tanker327/polling-service-manager/job"
)

// Logging returns middleware that logs stage start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		logger.Debug("stage started",
			slog.String("job_name", j.Name),
			slog.String("job_id", j.ID.String()),
			slog.String("stage", string(j.Stage)),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("stage failed",
				slog.String("job_name", j.Name),
				slog.String("job_id", j.ID.String()),
				slog.String("stage", string(j.Stage)),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("stage completed",
				slog.String("job_name", j.Name),
				slog.String("job_id", j.ID.String()),
				slog.String("stage", string(j.Stage)),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
