package metrics

import (
	"context"
)

// Package-level wrappers so callers never have to nil-check the global
// instance before metrics are initialized.

// RecordPlanGenerated records one successful plan generation.
func RecordPlanGenerated(ctx context.Context, destination string, duration float64) {
	if m := GetMetrics(); m != nil {
		m.RecordPlanGenerated(ctx, destination, duration)
	}
}

// RecordPlanFailed records one failed plan generation.
func RecordPlanFailed(ctx context.Context, destination, code string, duration float64) {
	if m := GetMetrics(); m != nil {
		m.RecordPlanFailed(ctx, destination, code, duration)
	}
}

// RecordPlanCacheHit records a plan request served from cache.
func RecordPlanCacheHit(ctx context.Context, destination string) {
	if m := GetMetrics(); m != nil {
		m.RecordPlanCacheHit(ctx, destination)
	}
}

// AddActivePlan increments the in-flight plan gauge.
func AddActivePlan(ctx context.Context) {
	if m := GetMetrics(); m != nil {
		m.AddActivePlan(ctx)
	}
}

// SubtractActivePlan decrements the in-flight plan gauge.
func SubtractActivePlan(ctx context.Context) {
	if m := GetMetrics(); m != nil {
		m.SubtractActivePlan(ctx)
	}
}

// RecordNotificationPublished records one published notification message.
func RecordNotificationPublished(ctx context.Context, level string) {
	if m := GetMetrics(); m != nil {
		m.RecordNotificationPublished(ctx, level)
	}
}
