package polling

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/tanker327/polling-service-manager/backoff"
	"github.com/tanker327/polling-service-manager/hook"
	"github.com/tanker327/polling-service-manager/id"
	"github.com/tanker327/polling-service-manager/job"
	"github.com/tanker327/polling-service-manager/middleware"
)

// task pairs a Job with its runtime state: the type-erased stage
// functions and the single pending poll timer. The task is owned
// exclusively by its Manager; all Job field transitions happen under
// the manager mutex.
type task struct {
	job      *job.Job
	handlers job.Handlers

	// timer is the pending poll timer. At most one exists per job at any
	// time; it is cleared when it fires, when the next one is armed, and
	// on abort.
	timer clockwork.Timer
}

// Manager owns a registry of independent polling jobs and is the sole
// entry point for creating, inspecting, and cancelling them.
//
// Multiple Manager instances may coexist; each has its own registry and
// configuration and they share no state.
type Manager struct {
	cfg    Config
	logger *slog.Logger
	clock  clockwork.Clock
	bo     backoff.Strategy
	hooks  *hook.Registry
	mw     middleware.Middleware

	userMW       []middleware.Middleware
	pendingHooks []hook.Hook

	mu    sync.Mutex
	tasks map[string]*task
}

// New creates a Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		cfg:   DefaultConfig(),
		tasks: make(map[string]*task),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: m.cfg.LogLevel,
		}))
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	if m.bo == nil {
		m.bo = backoff.NewConstant(m.cfg.PollInterval)
	}

	m.hooks = hook.NewRegistry(m.logger)
	for _, h := range m.pendingHooks {
		m.hooks.Register(h)
	}
	m.pendingHooks = nil

	// Recover runs outermost so a panicking stage function fails the job
	// instead of the process; Timeout runs innermost so the per-stage
	// deadline covers only the stage call itself.
	chain := make([]middleware.Middleware, 0, len(m.userMW)+2)
	chain = append(chain, middleware.Recover(m.logger))
	chain = append(chain, m.userMW...)
	chain = append(chain, middleware.Timeout(m.logger))
	m.mw = middleware.Chain(chain...)
	m.userMW = nil

	return m
}

// Start creates a job from the typed definition and immediately begins
// executing it. The returned id is available synchronously, before the
// trigger has necessarily completed. Start never fails synchronously;
// failures surface through the job state and the OnError callback.
//
// This is a package-level generic function because Go does not allow
// generic methods on non-generic receiver types.
func Start[T, U, V any](m *Manager, def *job.Definition[T, U, V]) id.JobID {
	return m.Submit(job.Erase(def))
}

// Submit starts a job from its type-erased form. Most callers use the
// generic Start instead.
func (m *Manager) Submit(h job.Handlers) id.JobID {
	jobID := id.NewJobID()
	now := m.clock.Now().UTC()

	j := &job.Job{
		ID:           jobID,
		Name:         h.Name,
		State:        job.StatePending,
		Stage:        job.StageTrigger,
		MaxRetries:   m.cfg.MaxRetryAttempts,
		StageTimeout: h.Opts.StageTimeout,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if h.Opts.MaxRetries != job.UseManagerDefault {
		j.MaxRetries = h.Opts.MaxRetries
	}

	t := &task{job: j, handlers: h}

	m.mu.Lock()
	m.tasks[jobID.String()] = t
	m.mu.Unlock()

	m.logger.Info("job started",
		slog.String("job_id", jobID.String()),
		slog.String("job_name", j.Name),
		slog.Int("max_retries", j.MaxRetries),
	)
	m.hooks.EmitJobStarted(context.Background(), j)

	go m.runTrigger(t)

	return jobID
}

// Abort cancels a job: any pending poll timer is stopped and the job
// transitions to the aborted state. Returns false (and logs a warning)
// if the id is not registered.
//
// Aborting a job that already reached a terminal state (completed,
// failed, or previously aborted) is a no-op on state: the original
// outcome is preserved and Abort returns true. Abort never invokes the
// success or error callback itself; if a stage call was in flight when
// the abort landed, its eventual result is dropped and an *AbortError
// is routed to the error callback.
func (m *Manager) Abort(jobID id.JobID) bool {
	m.mu.Lock()
	t, ok := m.tasks[jobID.String()]
	if !ok {
		m.mu.Unlock()
		m.logger.Warn("abort: job not found", slog.String("job_id", jobID.String()))
		return false
	}

	j := t.job
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if j.State.IsTerminal() {
		m.mu.Unlock()
		return true
	}

	j.State = job.StateAborted
	now := m.clock.Now().UTC()
	j.CompletedAt = &now
	j.UpdatedAt = now
	m.mu.Unlock()

	m.logger.Info("job aborted",
		slog.String("job_id", jobID.String()),
		slog.String("job_name", j.Name),
	)
	m.hooks.EmitJobAborted(context.Background(), j)

	return true
}

// AbortAll aborts every job registered at call time, in unspecified
// order. Equivalent to calling Abort for each id List would return.
func (m *Manager) AbortAll() {
	m.mu.Lock()
	ids := make([]id.JobID, 0, len(m.tasks))
	for _, t := range m.tasks {
		ids = append(ids, t.job.ID)
	}
	m.mu.Unlock()

	for _, jobID := range ids {
		m.Abort(jobID)
	}
}

// State returns the current state of the job, or false if the id is not
// registered. Pure lookup; no side effects.
func (m *Manager) State(jobID id.JobID) (job.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[jobID.String()]
	if !ok {
		return "", false
	}
	return t.job.State, true
}

// Get returns a snapshot copy of the job, including its stage results
// once set. Returns ErrJobNotFound for unknown ids.
func (m *Manager) Get(jobID id.JobID) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[jobID.String()]
	if !ok {
		return job.Job{}, ErrJobNotFound
	}
	return t.job.Snapshot(), nil
}

// Cleanup removes the job from the registry, aborting it first if it is
// still running. This is the only operation that removes a job; terminal
// jobs stay inspectable until cleaned up explicitly. Returns false if
// the id is not registered.
func (m *Manager) Cleanup(jobID id.JobID) bool {
	m.mu.Lock()
	t, ok := m.tasks[jobID.String()]
	if !ok {
		m.mu.Unlock()
		return false
	}
	needsAbort := !t.job.State.IsTerminal()
	m.mu.Unlock()

	if needsAbort {
		m.Abort(jobID)
	}

	m.mu.Lock()
	delete(m.tasks, jobID.String())
	m.mu.Unlock()

	m.logger.Debug("job removed", slog.String("job_id", jobID.String()))
	return true
}

// List returns a snapshot of all registered jobs at call time. The
// returned slice is not a live view.
func (m *Manager) List() []job.Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]job.Info, 0, len(m.tasks))
	for _, t := range m.tasks {
		infos = append(infos, job.Info{ID: t.job.ID, State: t.job.State})
	}
	return infos
}

// Len returns the number of registered jobs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Hooks returns the manager's hook registry so hosts can register hooks
// after construction.
func (m *Manager) Hooks() *hook.Registry { return m.hooks }

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Config returns a copy of the manager's configuration.
func (m *Manager) Config() Config { return m.cfg }
