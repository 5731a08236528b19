package monitoring

import "context"

type Service interface {
	// Monitoring builds the scoped, classified per-subordinate list for one
	// date. Scope: HR/admin see everyone, hr_cabang its own store, managers
	// their transitive subordinates.
	Monitoring(ctx context.Context, filter MonitoringFilter) (MonitoringResponse, error)

	// Analytics computes team counts for the date, a 7-day trend ending on
	// it, and the caller-vs-team average work-hours comparison.
	Analytics(ctx context.Context, date string) (AnalyticsResponse, error)
}
