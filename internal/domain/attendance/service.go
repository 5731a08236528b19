package attendance

import "context"

type AbsensiService interface {
	// CheckIn validates geofence and duplicates, resolves the effective
	// shift, classifies lateness and persists the row in one transaction.
	CheckIn(ctx context.Context, req CheckInRequest) (AbsensiResponse, error)

	// CheckOut completes the day's row, creating a minimal one when the
	// user never checked in.
	CheckOut(ctx context.Context, req CheckOutRequest) (AbsensiResponse, error)

	// TodayStatus classifies the caller's current day.
	TodayStatus(ctx context.Context) (DayStatusResponse, error)

	// History returns every day of the month classified, including virtual
	// days with no attendance row.
	History(ctx context.Context, month, year int) ([]DayStatusResponse, error)
}
