package job

import "time"

// UseManagerDefault is the MaxRetries sentinel meaning "inherit the
// manager-wide ceiling".
const UseManagerDefault = -1

// Options configures per-job overrides.
type Options struct {
	// MaxRetries overrides the manager-wide retry ceiling for this job.
	// UseManagerDefault (the default) inherits the manager configuration.
	MaxRetries int

	// StageTimeout is the maximum duration a single trigger/poll/complete
	// call may run before its context is cancelled. Zero means unlimited.
	StageTimeout time.Duration
}

// DefaultOptions returns Options that inherit all manager-wide settings.
func DefaultOptions() Options {
	return Options{
		MaxRetries: UseManagerDefault,
	}
}

// Option is a functional option for configuring a job definition.
type Option func(*Options)

// WithMaxRetries overrides the retry ceiling for this job.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithStageTimeout sets a per-stage execution deadline.
func WithStageTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.StageTimeout = d
	}
}
