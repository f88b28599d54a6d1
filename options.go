package polling

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tanker327/polling-service-manager/backoff"
	"github.com/tanker327/polling-service-manager/hook"
	"github.com/tanker327/polling-service-manager/middleware"
)

// Option configures a Manager.
type Option func(*Manager)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// WithPollInterval sets the delay between successive poll attempts.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) { m.cfg.PollInterval = d }
}

// WithMaxRetryAttempts sets the number of "not done" poll results
// tolerated before a job fails.
func WithMaxRetryAttempts(n int) Option {
	return func(m *Manager) { m.cfg.MaxRetryAttempts = n }
}

// WithLogLevel sets the verbosity of the manager's default logger.
// It has no effect when a logger is injected via WithLogger.
func WithLogLevel(level slog.Level) Option {
	return func(m *Manager) { m.cfg.LogLevel = level }
}

// WithLogger sets the logger used for internal lifecycle logging.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithBackoff sets the delay strategy between poll attempts. If not set,
// backoff.NewConstant(cfg.PollInterval) is used: a fixed interval.
func WithBackoff(b backoff.Strategy) Option {
	return func(m *Manager) { m.bo = b }
}

// WithClock sets the clock used to schedule poll timers. Intended for
// tests; the default is the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithMiddleware appends middleware to the stage execution chain.
// The manager always runs Recover outermost so panicking stage functions
// fail the job instead of the process.
func WithMiddleware(mw middleware.Middleware) Option {
	return func(m *Manager) { m.userMW = append(m.userMW, mw) }
}

// WithHook registers a lifecycle hook with the manager.
func WithHook(h hook.Hook) Option {
	return func(m *Manager) { m.pendingHooks = append(m.pendingHooks, h) }
}
