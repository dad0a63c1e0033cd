package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds the application metric instruments.
type OTelMetrics struct {
	// Plan generation metrics
	PlanRequestsTotal  metric.Int64Counter
	PlanDuration       metric.Float64Histogram
	PlanCacheHitsTotal metric.Int64Counter
	PlanActiveRequests metric.Int64UpDownCounter

	// Notification metrics
	NotificationsPublishedTotal metric.Int64Counter
}

var (
	metrics *OTelMetrics

	meter = otel.Meter("tripplanner")
)

// InitMetrics creates the metric instruments.
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.PlanRequestsTotal, err = meter.Int64Counter(
		"plan_requests_total",
		metric.WithDescription("Total number of plan generation requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	metrics.PlanDuration, err = meter.Float64Histogram(
		"plan_generation_duration_seconds",
		metric.WithDescription("Time spent generating a trip plan in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return err
	}

	metrics.PlanCacheHitsTotal, err = meter.Int64Counter(
		"plan_cache_hits_total",
		metric.WithDescription("Total number of plan requests served from cache"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	metrics.PlanActiveRequests, err = meter.Int64UpDownCounter(
		"plan_active_requests",
		metric.WithDescription("Number of plan generations currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	metrics.NotificationsPublishedTotal, err = meter.Int64Counter(
		"trip_notifications_published_total",
		metric.WithDescription("Total number of trip notifications published"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics returns the global instance, nil before InitMetrics.
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordPlanGenerated records one successful plan generation.
func (m *OTelMetrics) RecordPlanGenerated(ctx context.Context, destination string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("destination", destination),
		attribute.String("outcome", "success"),
	}

	m.PlanRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.PlanDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
}

// RecordPlanFailed records one failed plan generation with its error code.
func (m *OTelMetrics) RecordPlanFailed(ctx context.Context, destination, code string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("destination", destination),
		attribute.String("outcome", "error"),
		attribute.String("error_code", code),
	}

	m.PlanRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.PlanDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
}

// RecordPlanCacheHit records a plan request answered without calling the
// upstream planner.
func (m *OTelMetrics) RecordPlanCacheHit(ctx context.Context, destination string) {
	m.PlanCacheHitsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("destination", destination),
	))
}

// AddActivePlan increments the in-flight plan gauge.
func (m *OTelMetrics) AddActivePlan(ctx context.Context) {
	m.PlanActiveRequests.Add(ctx, 1)
}

// SubtractActivePlan decrements the in-flight plan gauge.
func (m *OTelMetrics) SubtractActivePlan(ctx context.Context) {
	m.PlanActiveRequests.Add(ctx, -1)
}

// RecordNotificationPublished records one published notification message.
func (m *OTelMetrics) RecordNotificationPublished(ctx context.Context, level string) {
	m.NotificationsPublishedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("level", level),
	))
}
