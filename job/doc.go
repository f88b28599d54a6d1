// Package job defines the polling job entity, its state machine, and
// typed job definitions.
//
// # Job Entity
//
// A [Job] represents one asynchronous operation observed through the
// trigger → poll → complete lifecycle:
//
//	pending → polling → polling → ... → completed
//	pending → failed                      (trigger error)
//	pending → polling → failed            (poll error, ceiling, complete error)
//	any non-terminal → aborted            (explicit cancellation)
//
// Fields of note:
//   - TriggerResult / PollResult / FinalResult: write-once stage outputs
//   - MaxRetries / RetryCount: the retry budget; a ceiling of N permits
//     N+1 total poll invocations before the job fails
//   - Stage: which caller-supplied function is (or was last) running
//
// # Defining a Job
//
// Use [Definition] with three typed stage functions. T is the trigger
// handle, U the poll result, V the final value:
//
//	def := job.NewDefinition("export-report",
//	    func(ctx context.Context) (string, error) {
//	        return api.StartExport(ctx)
//	    },
//	    func(ctx context.Context, exportID string) (job.Status[Report], error) {
//	        r, ready, err := api.CheckExport(ctx, exportID)
//	        if err != nil {
//	            return job.NotDone[Report](), err
//	        }
//	        if !ready {
//	            return job.NotDone[Report](), nil
//	        }
//	        return job.Done(r), nil
//	    },
//	    func(ctx context.Context, r Report) (string, error) {
//	        return r.URL, nil
//	    },
//	)
//
// [Erase] converts the typed definition into the type-erased [Handlers]
// form the manager executes. Applications normally call the manager's
// generic Start rather than Erase directly.
package job
