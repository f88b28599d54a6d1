// Package polling manages asynchronous operations whose result is not
// immediately available: an operation is triggered, its status is polled
// on a fixed interval until it reports done, and the polled result is
// transformed into a final value.
//
// # Quick Start
//
//	mgr := polling.New(
//	    polling.WithPollInterval(2 * time.Second),
//	    polling.WithMaxRetryAttempts(30),
//	)
//
//	def := job.NewDefinition("export-report",
//	    startExport,   // func(ctx) (string, error)           — trigger
//	    checkExport,   // func(ctx, string) (job.Status[Report], error)
//	    publishReport, // func(ctx, Report) (string, error)   — complete
//	)
//	def.OnSuccess = func(url string) { notify(url) }
//	def.OnError = func(err error) { alert(err) }
//
//	jobID := polling.Start(mgr, def)
//
// The id returns synchronously; the job advances in the background
// through pending → polling → completed (or failed/aborted). Inspect it
// with State, Get, or List; cancel it with Abort; remove it with Cleanup.
//
// # Architecture
//
// Each job is an independent state machine driven by a per-job timer.
// Jobs never block each other; a Manager imposes no cross-job
// concurrency limit. Failures are isolated per job and surface only
// through the job's state and its OnError callback — Start, Abort, and
// Cleanup never return stage errors.
//
// Stage execution is wrapped in a composable middleware chain
// (middleware package), lifecycle transitions are published to
// registered hooks (hook package), and poll delays come from a pluggable
// strategy (backoff package, fixed interval by default).
//
// All job IDs are TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package polling
