package attendance

import "time"

// StatusHadir is the raw status stored on an Absensi row.
type StatusHadir string

const (
	StatusHadirHadir    StatusHadir = "hadir"
	StatusHadirTelat    StatusHadir = "hadir telat"
	StatusHadirMangkir  StatusHadir = "mangkir"
	StatusHadirCuti     StatusHadir = "cuti"
	StatusHadirSakit    StatusHadir = "sakit"
	StatusHadirSakitTPS StatusHadir = "sakit tps"
	StatusHadirIzin     StatusHadir = "izin"
	StatusHadirLibur    StatusHadir = "libur"
)

// IsCorrectable reports whether an employee may file a koreksi against a row
// carrying this raw status. Leave-synced statuses are never correctable.
func (s StatusHadir) IsCorrectable() bool {
	switch s {
	case StatusHadirCuti, StatusHadirSakit, StatusHadirSakitTPS, StatusHadirIzin, StatusHadirLibur:
		return false
	}
	return true
}

// DisplayStatus is the classified per-day status shown to users. It is a
// closed set; the classifier switches over every variant.
type DisplayStatus string

const (
	DisplayHadir           DisplayStatus = "hadir"
	DisplayHadirTelat      DisplayStatus = "hadir telat"
	DisplayMangkir         DisplayStatus = "mangkir"
	DisplaySedangBekerja   DisplayStatus = "sedang bekerja"
	DisplayTidakAbsenMasuk DisplayStatus = "tidak absen masuk"
	DisplayTidakAbsenPulang DisplayStatus = "tidak absen pulang"
	DisplayBelumAbsen      DisplayStatus = "belum absen"
	DisplayCuti            DisplayStatus = "cuti"
	DisplayOff             DisplayStatus = "-"
)

// Absensi is the system of record for what actually happened on one
// (user, date). At most one row exists per pair; the database enforces it.
type Absensi struct {
	ID      string
	UserID  string
	Tanggal time.Time

	// ShiftID snapshots the shift in effect at punch time.
	ShiftID  *string
	OutletID *string

	JamMasuk  *time.Time
	JamPulang *time.Time

	StatusHadir      StatusHadir
	MenitTerlambat   int
	StatusTerlambat  bool
	MenitPulangCepat int
	PulangCepat      bool
	TotalJamKerja    *float64

	LatitudeMasuk   *float64
	LongitudeMasuk  *float64
	LatitudePulang  *float64
	LongitudePulang *float64
	FotoMasukURL    *string
	FotoPulangURL   *string

	Catatan *string

	// IsLocked is set by leave-approval sync to protect the row against
	// casual edits; koreksi approval clears it again.
	IsLocked bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserNama  *string
	UserStore *string
	ShiftNama *string
}
