package polling

import (
	"errors"
	"fmt"

	"github.com/tanker327/polling-service-manager/id"
	"github.com/tanker327/polling-service-manager/job"
)

var (
	// ErrJobNotFound is returned by lookups for ids that were never
	// registered or have been cleaned up.
	ErrJobNotFound = errors.New("polling: job not found")

	// ErrRetryExhausted marks a failure synthesized when a job's poll
	// attempts exceed the configured ceiling. It is distinct from stage
	// failures: no trigger/poll/complete call errored.
	ErrRetryExhausted = errors.New("polling: retry ceiling exceeded")
)

// AbortError marks a failure caused by an explicit abort that landed
// while a stage call was in flight. It is surfaced through the error
// callback like any other failure but is never subject to retry handling.
type AbortError struct {
	JobID id.JobID
	Stage job.Stage
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return fmt.Sprintf("polling: job %s aborted during %s stage", e.JobID, e.Stage)
}

// IsAborted reports whether err is (or wraps) an AbortError.
func IsAborted(err error) bool {
	var ae *AbortError
	return errors.As(err, &ae)
}

// retryableError tags an error as transient so a failing poll attempt is
// treated like a "not done" outcome instead of failing the job.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// Retryable tags err as retryable. A poll stage returning a retryable
// error counts toward the retry ceiling and reschedules instead of
// failing the job immediately. Returns nil if err is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err is (or wraps) a retryable error.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
