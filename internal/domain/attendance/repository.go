package attendance

import (
	"context"
	"time"
)

// AbsensiRepository defines data access for attendance rows. The table
// carries a unique index on (user_id, tanggal); Create surfaces a violation
// as ErrAlreadyCheckedIn so a race between two concurrent punches is settled
// by the constraint, not by application locking.
type AbsensiRepository interface {
	Create(ctx context.Context, a Absensi) (Absensi, error)

	GetByID(ctx context.Context, id string) (Absensi, error)

	// GetByUserAndDate returns nil when no row exists for the pair.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Absensi, error)

	GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Absensi, error)

	// GetByUsersAndDate fetches one day's rows for a set of users in one
	// query; used by monitoring.
	GetByUsersAndDate(ctx context.Context, userIDs []string, date time.Time) ([]Absensi, error)

	Update(ctx context.Context, a Absensi) error

	// Upsert writes the row for (user, date), creating it when absent.
	// Used by koreksi approval, leave expansion and the cron jobs.
	Upsert(ctx context.Context, a Absensi) (Absensi, error)

	// ListOpenBefore returns rows with a check-in but no check-out dated
	// strictly before the cutoff; used by the stale-row cron job.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Absensi, error)
}
