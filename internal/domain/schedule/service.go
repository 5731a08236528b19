package schedule

import (
	"context"
	"time"
)

// Resolver determines the effective shift for a (user, date) pair by the
// precedence chain: approved shift-change override, published Jadwal row,
// otherwise off. The user's default shift never participates here; only
// legacy manual-entry paths use it, via ResolveWithDefault.
type Resolver interface {
	EffectiveShift(ctx context.Context, userID string, date time.Time) (EffectiveShift, error)

	// ResolveWithDefault is the manual-entry variant: schedule first, then
	// the user's default shift as a last resort.
	ResolveWithDefault(ctx context.Context, userID string, date time.Time) (EffectiveShift, error)
}

// JadwalService covers publishing schedule rows.
type JadwalService interface {
	Upsert(ctx context.Context, req UpsertJadwalRequest) (JadwalResponse, error)
	GetMonth(ctx context.Context, userID string, month, year int) ([]JadwalResponse, error)
	Delete(ctx context.Context, userID string, date string) error
}
