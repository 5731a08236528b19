package schedule

import (
	"context"
	"time"
)

type JadwalRepository interface {
	// GetByUserAndDate returns nil (not an error) when no row was published
	// for the date, so callers can distinguish StateNone from StateExplicitOff.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Jadwal, error)

	GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Jadwal, error)

	// Upsert publishes or replaces the row for (user, date). A nil ShiftID
	// publishes an explicit day off.
	Upsert(ctx context.Context, j Jadwal) (Jadwal, error)

	// UpdateShift rewrites the shift of an existing row; used by approved
	// shift-change requests.
	UpdateShift(ctx context.Context, userID string, date time.Time, shiftID *string) error

	Delete(ctx context.Context, userID string, date time.Time) error
}
