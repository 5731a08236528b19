package schedule

import (
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/shift"
)

// Jadwal is one published schedule row for (user, date). A row with a nil
// ShiftID is an explicit day off; the absence of any row for a date also
// renders as off, but the two states stay distinguishable (see State).
type Jadwal struct {
	ID        string
	UserID    string
	Tanggal   time.Time
	ShiftID   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	Shift *shift.Shift
}

// State describes how a (user, date) pair is scheduled.
type State string

const (
	// StateScheduled means a published row points at a shift.
	StateScheduled State = "scheduled"
	// StateExplicitOff means a published row exists with a null shift.
	StateExplicitOff State = "explicit_off"
	// StateNone means no row was published for the date. Renders as off,
	// same as StateExplicitOff, but bulk tooling may treat them apart.
	StateNone State = "not_scheduled"
)

// EffectiveShift is the outcome of shift resolution for a (user, date) pair.
type EffectiveShift struct {
	Shift *shift.Shift
	State State

	// IsChanged marks that an approved shift-change override won over the
	// published schedule.
	IsChanged bool

	// PendingSwap surfaces an unapproved shift-change request for display
	// only; it never affects resolution.
	PendingSwapID *string
}

// IsOff reports whether the pair resolves to no working shift.
func (e EffectiveShift) IsOff() bool {
	return e.Shift == nil
}
