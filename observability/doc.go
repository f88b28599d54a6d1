// Package observability provides ready-made lifecycle hooks: a
// [MetricsHook] recording OpenTelemetry counters for every job
// transition, and a [LoggingHook] mirroring transitions to a
// slog.Logger.
//
// Register either (or both) with the manager:
//
//	mgr := polling.New(
//	    polling.WithHook(observability.NewMetricsHook()),
//	    polling.WithHook(observability.NewLoggingHook(logger)),
//	)
package observability
