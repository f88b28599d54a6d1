package job

import "context"

// Definition is a typed description of a polling job. T is the trigger
// result (the handle used by polling), U is the poll result, and V is the
// final value produced by Complete.
type Definition[T, U, V any] struct {
	// Name is a human-readable label used in logs and lifecycle events.
	Name string

	// Trigger starts the underlying operation and returns the handle
	// consumed by Poll.
	Trigger func(ctx context.Context) (T, error)

	// Poll checks the status of the triggered operation.
	Poll func(ctx context.Context, triggerResult T) (Status[U], error)

	// Complete transforms the poll result into the job's final value.
	Complete func(ctx context.Context, pollResult U) (V, error)

	// OnSuccess, if set, is invoked with the final value after the job
	// reaches the completed state. Panics are recovered and logged.
	OnSuccess func(final V)

	// OnError, if set, is invoked with the failure cause when the job
	// fails (or when an abort interrupts an in-flight stage). Panics are
	// recovered and logged.
	OnError func(err error)

	// Opts configures per-job overrides such as retry ceiling and
	// stage timeout.
	Opts Options
}

// NewDefinition creates a typed job definition.
func NewDefinition[T, U, V any](
	name string,
	trigger func(ctx context.Context) (T, error),
	poll func(ctx context.Context, triggerResult T) (Status[U], error),
	complete func(ctx context.Context, pollResult U) (V, error),
	opts ...Option,
) *Definition[T, U, V] {
	def := &Definition[T, U, V]{
		Name:     name,
		Trigger:  trigger,
		Poll:     poll,
		Complete: complete,
		Opts:     DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&def.Opts)
	}
	return def
}

// TriggerFunc is the type-erased trigger stage.
type TriggerFunc func(ctx context.Context) (any, error)

// PollFunc is the type-erased poll stage. It receives the stored trigger
// result and reports the raw status.
type PollFunc func(ctx context.Context, triggerResult any) (RawStatus, error)

// CompleteFunc is the type-erased completion stage.
type CompleteFunc func(ctx context.Context, pollResult any) (any, error)

// SuccessFunc is the type-erased success callback.
type SuccessFunc func(final any)

// ErrorFunc is the error callback.
type ErrorFunc func(err error)

// Handlers is the type-erased form of a Definition, consumed by the
// manager. The typed Definition is converted at start time by closing
// over the typed functions.
type Handlers struct {
	Name      string
	Trigger   TriggerFunc
	Poll      PollFunc
	Complete  CompleteFunc
	OnSuccess SuccessFunc
	OnError   ErrorFunc
	Opts      Options
}

// Erase converts a typed Definition into type-erased Handlers.
//
// This is a package-level generic function because Go does not allow
// generic methods on non-generic receiver types.
func Erase[T, U, V any](def *Definition[T, U, V]) Handlers {
	h := Handlers{
		Name: def.Name,
		Opts: def.Opts,
	}

	h.Trigger = func(ctx context.Context) (any, error) {
		return def.Trigger(ctx)
	}

	h.Poll = func(ctx context.Context, triggerResult any) (RawStatus, error) {
		t, _ := triggerResult.(T)
		st, err := def.Poll(ctx, t)
		if err != nil {
			return RawStatus{}, err
		}
		raw := RawStatus{Done: st.Done}
		if st.Result != nil {
			raw.Result = *st.Result
			raw.HasResult = true
		}
		return raw, nil
	}

	h.Complete = func(ctx context.Context, pollResult any) (any, error) {
		u, _ := pollResult.(U)
		return def.Complete(ctx, u)
	}

	if def.OnSuccess != nil {
		onSuccess := def.OnSuccess
		h.OnSuccess = func(final any) {
			v, _ := final.(V)
			onSuccess(v)
		}
	}
	if def.OnError != nil {
		h.OnError = def.OnError
	}

	return h
}
