package polling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tanker327/polling-service-manager/job"
	"github.com/tanker327/polling-service-manager/middleware"
)

// This file is the per-job state machine:
//
//	pending → polling → polling → ... → completed
//	pending → failed / polling → failed
//	any non-terminal → aborted (from Abort, see manager.go)
//
// Each job advances on its own goroutine (runTrigger) and on timer
// callbacks (pollOnce). Only one of those is ever in flight per job,
// so transitions are single-writer; the manager mutex guards them
// against concurrent Abort/lookup calls. Stage functions run with the
// mutex released, and every transition re-checks the state afterward so
// an abort that landed mid-flight wins: the stage result is dropped and
// an *AbortError is routed to the error callback.

// runTrigger executes the trigger stage and, on success, enters the
// poll loop by arming the first poll timer.
func (m *Manager) runTrigger(t *task) {
	ctx := context.Background()
	j := t.job

	var result any
	stageErr := m.runStage(ctx, t, job.StageTrigger, func(sctx context.Context) error {
		r, err := t.handlers.Trigger(sctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	m.mu.Lock()
	if j.State != job.StatePending {
		m.mu.Unlock()
		m.dropStageResult(t, job.StageTrigger)
		return
	}
	if stageErr != nil {
		m.mu.Unlock()
		m.fail(t, stageErr)
		return
	}

	j.TriggerResult = result
	j.State = job.StatePolling
	now := m.clock.Now().UTC()
	j.StartedAt = &now
	j.UpdatedAt = now

	delay := m.bo.Delay(1)
	m.armPollTimer(t, delay)
	m.mu.Unlock()

	m.logger.Debug("job triggered, polling",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.Duration("first_poll_in", delay),
	)
	m.hooks.EmitJobTriggered(ctx, j)
}

// pollOnce is the timer callback for one poll attempt.
func (m *Manager) pollOnce(t *task) {
	ctx := context.Background()
	j := t.job

	m.mu.Lock()
	if j.State != job.StatePolling {
		m.mu.Unlock()
		return
	}
	t.timer = nil // the pending timer has fired
	triggerResult := j.TriggerResult
	m.mu.Unlock()

	var raw job.RawStatus
	stageErr := m.runStage(ctx, t, job.StagePoll, func(sctx context.Context) error {
		r, err := t.handlers.Poll(sctx, triggerResult)
		if err != nil {
			return err
		}
		raw = r
		return nil
	})

	m.mu.Lock()
	if j.State != job.StatePolling {
		m.mu.Unlock()
		m.dropStageResult(t, job.StagePoll)
		return
	}

	switch {
	case stageErr != nil && !IsRetryable(stageErr):
		m.mu.Unlock()
		m.fail(t, stageErr)

	case stageErr == nil && raw.Done && raw.HasResult:
		j.PollResult = raw.Result
		j.UpdatedAt = m.clock.Now().UTC()
		m.mu.Unlock()
		m.runComplete(t)

	default:
		// Not done yet. This branch also covers retryable poll errors and
		// "done" without a usable result, both of which count toward the
		// ceiling.
		j.RetryCount++
		attempt := j.RetryCount
		j.UpdatedAt = m.clock.Now().UTC()

		if attempt > j.MaxRetries {
			m.mu.Unlock()
			m.fail(t, fmt.Errorf("%w after %d poll attempts", ErrRetryExhausted, attempt))
			return
		}

		delay := m.bo.Delay(attempt + 1)
		m.armPollTimer(t, delay)
		m.mu.Unlock()

		m.logger.Debug("poll not done, rescheduled",
			slog.String("job_id", j.ID.String()),
			slog.String("job_name", j.Name),
			slog.Int("attempt", attempt),
			slog.Int("max_retries", j.MaxRetries),
			slog.Duration("delay", delay),
		)
		m.hooks.EmitJobRetrying(ctx, j, attempt, delay)
	}
}

// runComplete executes the completion stage and finishes the job.
func (m *Manager) runComplete(t *task) {
	ctx := context.Background()
	j := t.job

	var final any
	stageErr := m.runStage(ctx, t, job.StageComplete, func(sctx context.Context) error {
		v, err := t.handlers.Complete(sctx, j.PollResult)
		if err != nil {
			return err
		}
		final = v
		return nil
	})

	m.mu.Lock()
	if j.State != job.StatePolling {
		m.mu.Unlock()
		m.dropStageResult(t, job.StageComplete)
		return
	}
	if stageErr != nil {
		m.mu.Unlock()
		m.fail(t, stageErr)
		return
	}

	j.FinalResult = final
	j.State = job.StateCompleted
	now := m.clock.Now().UTC()
	j.CompletedAt = &now
	j.UpdatedAt = now
	elapsed := now.Sub(j.CreatedAt)
	onSuccess := t.handlers.OnSuccess
	m.mu.Unlock()

	m.logger.Info("job completed",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.Int("retry_count", j.RetryCount),
		slog.Duration("elapsed", elapsed),
	)
	m.hooks.EmitJobCompleted(ctx, j, elapsed)

	if onSuccess != nil {
		m.safeCallback("onSuccess", j, func() { onSuccess(final) })
	}
}

// runStage records the stage on the job and executes fn through the
// middleware chain.
func (m *Manager) runStage(ctx context.Context, t *task, stage job.Stage, fn middleware.Handler) error {
	m.mu.Lock()
	t.job.Stage = stage
	m.mu.Unlock()

	return m.mw(ctx, t.job, fn)
}

// fail moves the job to the failed state and routes cause to the error
// callback. A job that reached a terminal state in the meantime (abort
// racing a stage) is left untouched.
func (m *Manager) fail(t *task, cause error) {
	j := t.job

	m.mu.Lock()
	if j.State.IsTerminal() {
		m.mu.Unlock()
		return
	}
	j.State = job.StateFailed
	j.LastError = cause.Error()
	now := m.clock.Now().UTC()
	j.CompletedAt = &now
	j.UpdatedAt = now
	onError := t.handlers.OnError
	m.mu.Unlock()

	m.logger.Warn("job failed",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.String("stage", string(j.Stage)),
		slog.Int("retry_count", j.RetryCount),
		slog.String("error", cause.Error()),
	)
	m.hooks.EmitJobFailed(context.Background(), j, cause)

	if onError != nil {
		m.safeCallback("onError", j, func() { onError(cause) })
	}
}

// dropStageResult handles a stage call whose job was aborted while the
// call was in flight. The result is discarded; the consumer expecting a
// signal gets an *AbortError through the error callback. AbortError is
// flagged so it is never retried or otherwise reprocessed.
func (m *Manager) dropStageResult(t *task, stage job.Stage) {
	j := t.job

	m.logger.Debug("stage result dropped after abort",
		slog.String("job_id", j.ID.String()),
		slog.String("job_name", j.Name),
		slog.String("stage", string(stage)),
	)

	if onError := t.handlers.OnError; onError != nil {
		cause := &AbortError{JobID: j.ID, Stage: stage}
		m.safeCallback("onError", j, func() { onError(cause) })
	}
}

// armPollTimer schedules the next poll attempt. Callers must hold m.mu.
// Any previously pending timer is stopped first, preserving the
// one-pending-timer-per-job invariant.
func (m *Manager) armPollTimer(t *task, delay time.Duration) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = m.clock.AfterFunc(delay, func() { m.pollOnce(t) })
}

// safeCallback invokes a host callback, containing panics. Callback
// failures are logged and never alter the job's already-determined
// terminal state.
func (m *Manager) safeCallback(name string, j *job.Job, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("callback panicked",
				slog.String("callback", name),
				slog.String("job_id", j.ID.String()),
				slog.String("job_name", j.Name),
				slog.Any("panic", r),
			)
		}
	}()
	fn()
}
