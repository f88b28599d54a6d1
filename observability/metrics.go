package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tanker327/polling-service-manager/hook"
	"github.com/tanker327/polling-service-manager/job"
)

// meterName is the instrumentation scope name for lifecycle metrics.
const meterName = "github.com/tanker327/polling-service-manager/observability"

// Compile-time interface checks.
var (
	_ hook.Hook         = (*MetricsHook)(nil)
	_ hook.JobStarted   = (*MetricsHook)(nil)
	_ hook.JobRetrying  = (*MetricsHook)(nil)
	_ hook.JobCompleted = (*MetricsHook)(nil)
	_ hook.JobFailed    = (*MetricsHook)(nil)
	_ hook.JobAborted   = (*MetricsHook)(nil)
)

// MetricsHook records manager-wide lifecycle metrics via OpenTelemetry.
// Register it with the manager to automatically track job starts,
// completions, failures, aborts, and poll retries.
//
// Instruments (all Int64Counter, attribute job_name):
//   - polling.job.started
//   - polling.job.retried
//   - polling.job.completed
//   - polling.job.failed
//   - polling.job.aborted
type MetricsHook struct {
	started   metric.Int64Counter
	retried   metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	aborted   metric.Int64Counter
}

// NewMetricsHook creates a MetricsHook using the global OTel MeterProvider.
// If no MeterProvider is configured, noop instruments are used.
func NewMetricsHook() *MetricsHook {
	return NewMetricsHookWithMeter(otel.Meter(meterName))
}

// NewMetricsHookWithMeter creates a MetricsHook with the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func NewMetricsHookWithMeter(meter metric.Meter) *MetricsHook {
	h := &MetricsHook{}

	// On instrument-creation error the OTel API returns noop instruments,
	// so the hook degrades gracefully.
	h.started, _ = meter.Int64Counter("polling.job.started",
		metric.WithDescription("Total jobs started"))
	h.retried, _ = meter.Int64Counter("polling.job.retried",
		metric.WithDescription("Total poll attempts that reported not done"))
	h.completed, _ = meter.Int64Counter("polling.job.completed",
		metric.WithDescription("Total jobs completed successfully"))
	h.failed, _ = meter.Int64Counter("polling.job.failed",
		metric.WithDescription("Total jobs failed"))
	h.aborted, _ = meter.Int64Counter("polling.job.aborted",
		metric.WithDescription("Total jobs aborted"))

	return h
}

// Name implements hook.Hook.
func (h *MetricsHook) Name() string { return "observability-metrics" }

func jobAttrs(j *job.Job) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("job_name", j.Name))
}

// OnJobStarted implements hook.JobStarted.
func (h *MetricsHook) OnJobStarted(ctx context.Context, j *job.Job) error {
	h.started.Add(ctx, 1, jobAttrs(j))
	return nil
}

// OnJobRetrying implements hook.JobRetrying.
func (h *MetricsHook) OnJobRetrying(ctx context.Context, j *job.Job, _ int, _ time.Duration) error {
	h.retried.Add(ctx, 1, jobAttrs(j))
	return nil
}

// OnJobCompleted implements hook.JobCompleted.
func (h *MetricsHook) OnJobCompleted(ctx context.Context, j *job.Job, _ time.Duration) error {
	h.completed.Add(ctx, 1, jobAttrs(j))
	return nil
}

// OnJobFailed implements hook.JobFailed.
func (h *MetricsHook) OnJobFailed(ctx context.Context, j *job.Job, _ error) error {
	h.failed.Add(ctx, 1, jobAttrs(j))
	return nil
}

// OnJobAborted implements hook.JobAborted.
func (h *MetricsHook) OnJobAborted(ctx context.Context, j *job.Job) error {
	h.aborted.Add(ctx, 1, jobAttrs(j))
	return nil
}
