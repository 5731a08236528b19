package attendance

import (
	"time"
)

type Lokasi struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CheckInRequest struct {
	// Foto is the proof photo as a base64 payload (optionally a data URL).
	Foto     string  `json:"foto"`
	Lokasi   *Lokasi `json:"lokasi"`
	OutletID string  `json:"outlet_id"`

	// UserID lets HR/admin punch on behalf of someone; other roles may only
	// send their own id (or leave it empty).
	UserID string `json:"user_id,omitempty"`
}

func (r CheckInRequest) Validate() error {
	if r.Foto == "" {
		return ErrMissingPhoto
	}
	if r.Lokasi == nil {
		return ErrMissingLocation
	}
	if r.OutletID == "" {
		return ErrNoOutletSelected
	}
	return nil
}

type CheckOutRequest struct {
	Foto     string  `json:"foto"`
	Lokasi   *Lokasi `json:"lokasi"`
	OutletID string  `json:"outlet_id"`
	Catatan  *string `json:"catatan,omitempty"`
	UserID   string  `json:"user_id,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	if r.Foto == "" {
		return ErrMissingPhoto
	}
	if r.Lokasi == nil {
		return ErrMissingLocation
	}
	if r.OutletID == "" {
		return ErrOutletRequired
	}
	return nil
}

type AbsensiResponse struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	UserNama         string      `json:"user_nama,omitempty"`
	Tanggal          string      `json:"tanggal"`
	ShiftID          *string     `json:"shift_id,omitempty"`
	ShiftNama        *string     `json:"shift_nama,omitempty"`
	OutletID         *string     `json:"outlet_id,omitempty"`
	JamMasuk         *string     `json:"jam_masuk"`
	JamPulang        *string     `json:"jam_pulang"`
	StatusHadir      StatusHadir `json:"status_hadir"`
	MenitTerlambat   int         `json:"menit_terlambat"`
	StatusTerlambat  bool        `json:"status_terlambat"`
	MenitPulangCepat int         `json:"menit_pulang_cepat"`
	PulangCepat      bool        `json:"pulang_cepat"`
	TotalJamKerja    *float64    `json:"total_jam_kerja"`
	FotoMasukURL     *string     `json:"foto_masuk_url,omitempty"`
	FotoPulangURL    *string     `json:"foto_pulang_url,omitempty"`
	Catatan          *string     `json:"catatan,omitempty"`
	IsLocked         bool        `json:"is_locked"`

	// RequiresKoreksi flags a check-in past the hard lateness limit.
	RequiresKoreksi bool `json:"requires_koreksi,omitempty"`
}

// DayStatusResponse is one classified day as shown in today-status, history
// and monitoring. Virtual days (no Absensi row) carry a nil Record.
type DayStatusResponse struct {
	Tanggal           string           `json:"tanggal"`
	Status            DisplayStatus    `json:"status"`
	ShiftNama         *string          `json:"shift_nama,omitempty"`
	JamMasukShift     *string          `json:"jam_masuk_shift,omitempty"`
	JamPulangShift    *string          `json:"jam_pulang_shift,omitempty"`
	IsShiftChanged    bool             `json:"is_shift_changed,omitempty"`
	PendingSwapID     *string          `json:"pending_swap_id,omitempty"`
	CanRequestKoreksi bool             `json:"can_request_koreksi"`
	RequiresApproval  bool             `json:"requires_approval"`
	IsScheduledOff    bool             `json:"is_scheduled_off"`
	Record            *AbsensiResponse `json:"record"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

// ToResponse converts an Absensi entity to its response form.
func ToResponse(a Absensi) AbsensiResponse {
	resp := AbsensiResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		Tanggal:          a.Tanggal.Format("2006-01-02"),
		ShiftID:          a.ShiftID,
		ShiftNama:        a.ShiftNama,
		OutletID:         a.OutletID,
		JamMasuk:         timePtrToString(a.JamMasuk),
		JamPulang:        timePtrToString(a.JamPulang),
		StatusHadir:      a.StatusHadir,
		MenitTerlambat:   a.MenitTerlambat,
		StatusTerlambat:  a.StatusTerlambat,
		MenitPulangCepat: a.MenitPulangCepat,
		PulangCepat:      a.PulangCepat,
		TotalJamKerja:    a.TotalJamKerja,
		FotoMasukURL:     a.FotoMasukURL,
		FotoPulangURL:    a.FotoPulangURL,
		Catatan:          a.Catatan,
		IsLocked:         a.IsLocked,
	}
	if a.UserNama != nil {
		resp.UserNama = *a.UserNama
	}
	return resp
}
