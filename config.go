package polling

import (
	"log/slog"
	"time"
)

// Config holds configuration for a Manager. It applies uniformly to every
// job created by that Manager instance.
type Config struct {
	// PollInterval is the delay between successive poll attempts.
	PollInterval time.Duration

	// MaxRetryAttempts is the number of "not done" poll results tolerated
	// before a job fails. A ceiling of N permits N+1 total poll
	// invocations.
	MaxRetryAttempts int

	// LogLevel is the verbosity of internal lifecycle logging. It only
	// applies to the manager's own default logger; an injected logger
	// keeps its own level.
	LogLevel slog.Level
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:     5 * time.Second,
		MaxRetryAttempts: 10,
		LogLevel:         slog.LevelInfo,
	}
}
