package leave

import (
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Jenis string

const (
	JenisTahunan Jenis = "Tahunan"
	JenisSakit   Jenis = "Sakit"
	JenisIzin    Jenis = "Izin"
	JenisPenting Jenis = "Penting"
	JenisOff     Jenis = "Off"
)

// Cuti is a leave request over an inclusive date range. On approval it
// expands into one locked Absensi row per calendar day.
type Cuti struct {
	ID           string
	UserID       string
	Jenis        Jenis
	TanggalMulai time.Time
	TanggalAkhir time.Time
	JumlahHari   int
	Alasan       string
	BuktiURL     *string

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

// StatusHadirFor maps the leave type to the raw attendance status written
// into each expanded day. Sick leave without proof is flagged separately.
func (c *Cuti) StatusHadirFor() attendance.StatusHadir {
	switch c.Jenis {
	case JenisSakit:
		if c.BuktiURL != nil && *c.BuktiURL != "" {
			return attendance.StatusHadirSakit
		}
		return attendance.StatusHadirSakitTPS
	case JenisOff:
		return attendance.StatusHadirLibur
	case JenisIzin, JenisPenting:
		return attendance.StatusHadirIzin
	default:
		return attendance.StatusHadirCuti
	}
}

// CountsAgainstQuota reports whether the leave consumes sisa_cuti.
func (c *Cuti) CountsAgainstQuota() bool {
	return c.Jenis == JenisTahunan
}

// Days lists every calendar day in the range, inclusive.
func (c *Cuti) Days() []time.Time {
	var days []time.Time
	for d := c.TanggalMulai; !d.After(c.TanggalAkhir); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
