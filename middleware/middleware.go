// Package middleware provides composable middleware for stage execution.
// Middleware wraps trigger/poll/complete calls synchronously and can
// modify execution (recover from panics, enforce deadlines, log, add
// tracing, etc.).
package middleware

import (
	"context"

	"github.com/tanker327/polling-service-manager/job"
)

// Handler is the terminal function that executes one stage of a job.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the job whose stage is executing
// (j.Stage names the stage), and the next handler to call. Middleware
// MUST call next to continue the chain (unless short-circuiting on error).
type Middleware func(ctx context.Context, j *job.Job, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → stage
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, j, prev)
			}
		}
		return h(ctx)
	}
}
