package job

import (
	"time"

	"github.com/tanker327/polling-service-manager/id"
)

// State represents the lifecycle state of a polling job.
type State string

const (
	// StatePending means the job was created but its trigger has not
	// finished yet.
	StatePending State = "pending"
	// StatePolling means the trigger succeeded and the poll loop is active.
	StatePolling State = "polling"
	// StateCompleted means the job finished successfully.
	StateCompleted State = "completed"
	// StateFailed means a stage errored or the retry ceiling was exceeded.
	StateFailed State = "failed"
	// StateAborted means the job was explicitly cancelled.
	StateAborted State = "aborted"
)

// IsTerminal reports whether the state is one of the terminal outcomes
// (completed, failed, aborted).
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateAborted
}

// Stage identifies which of the three caller-supplied functions a job
// is currently (or was last) executing.
type Stage string

const (
	// StageTrigger is the initial asynchronous step that starts the
	// underlying operation.
	StageTrigger Stage = "trigger"
	// StagePoll is the repeated status check.
	StagePoll Stage = "poll"
	// StageComplete is the final transformation of the poll result.
	StageComplete Stage = "complete"
)

// Job represents one asynchronous operation managed through the
// trigger → poll → complete lifecycle.
//
// TriggerResult, PollResult, and FinalResult are write-once: each is set
// by exactly one successful stage and never overwritten afterward.
type Job struct {
	ID    id.JobID `json:"id"`
	Name  string   `json:"name"`
	State State    `json:"state"`
	Stage Stage    `json:"stage"`

	// RetryCount is the number of poll attempts that reported "not done"
	// (including "done" without a usable result, and retryable poll errors).
	RetryCount int `json:"retry_count"`
	// MaxRetries is the number of "not done" outcomes tolerated before the
	// job fails. A ceiling of N permits N+1 total poll invocations.
	MaxRetries int `json:"max_retries"`

	// StageTimeout is the per-stage execution deadline. Zero means
	// unlimited; enforcement is opt-in via the Timeout middleware.
	StageTimeout time.Duration `json:"stage_timeout,omitempty"`

	TriggerResult any    `json:"trigger_result,omitempty"`
	PollResult    any    `json:"poll_result,omitempty"`
	FinalResult   any    `json:"final_result,omitempty"`
	LastError     string `json:"last_error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Snapshot returns a copy of the job safe to hand outside the manager.
func (j *Job) Snapshot() Job {
	cp := *j
	if j.StartedAt != nil {
		t := *j.StartedAt
		cp.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		cp.CompletedAt = &t
	}
	return cp
}

// Info is the lightweight {id, state} pair returned by registry listings.
type Info struct {
	ID    id.JobID `json:"id"`
	State State    `json:"state"`
}
