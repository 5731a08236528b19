package shiftswap

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ShiftChangeRequest proposes replacing the scheduled shift on one date.
// A nil ShiftTujuanID proposes an explicit day off. On approval the Jadwal
// row is overridden and any existing Absensi row is re-pointed.
type ShiftChangeRequest struct {
	ID            string
	UserID        string
	Tanggal       time.Time
	ShiftAsalID   *string
	ShiftTujuanID *string
	Alasan        string

	Status     Status
	ApproverID *string
	Keterangan *string
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserNama        *string
	ShiftAsalNama   *string
	ShiftTujuanNama *string
}
