package correction

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// KoreksiAbsensi is an employee-submitted attendance correction. Once
// approved it writes back into the Absensi row; the request itself is
// terminal either way.
type KoreksiAbsensi struct {
	ID      string
	UserID  string
	Tanggal time.Time

	JamMasukBaru  *string // "15:04"
	JamPulangBaru *string
	Alasan        string

	Status          Status
	ApproverID      *string
	CatatanApprover *string
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserNama  *string
	UserStore *string
}
