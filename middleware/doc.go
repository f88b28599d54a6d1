// Package middleware provides composable middleware for stage execution.
//
// A [Middleware] is a function that wraps one trigger/poll/complete call.
// Middleware are composed into a chain using [Chain] and applied before
// each stage executes. They are applied right-to-left: the first
// middleware in the slice is the outermost wrapper.
//
//	// logging → recover → stage
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging] — logs job name, stage, duration, and outcome at each call
//   - [Recover] — catches panics in stage functions and converts them to errors
//   - [Timeout] — cancels the stage context after the job's StageTimeout
//   - [Tracing] — wraps execution in an OpenTelemetry span
//   - [Metrics] — records per-stage duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, j *job.Job, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting (e.g., circuit breaker, rate limiting).
package middleware
