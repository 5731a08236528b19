package shift

import (
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Nama           string  `json:"nama"`
	JamMasuk       string  `json:"jam_masuk"`
	JamPulang      string  `json:"jam_pulang"`
	ToleransiMenit int     `json:"toleransi_menit"`
	DurasiJamKerja float64 `json:"durasi_jam_kerja"`
}

func (r CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Nama) {
		errs = append(errs, validator.ValidationError{Field: "nama", Message: "Shift name is required"})
	}
	if !validator.IsValidTimeOfDay(r.JamMasuk) {
		errs = append(errs, validator.ValidationError{Field: "jam_masuk", Message: "Must be HH:MM"})
	}
	if !validator.IsValidTimeOfDay(r.JamPulang) {
		errs = append(errs, validator.ValidationError{Field: "jam_pulang", Message: "Must be HH:MM"})
	}
	if r.ToleransiMenit < 0 {
		errs = append(errs, validator.ValidationError{Field: "toleransi_menit", Message: "Must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	Nama           string  `json:"nama"`
	JamMasuk       string  `json:"jam_masuk"`
	JamPulang      string  `json:"jam_pulang"`
	ToleransiMenit int     `json:"toleransi_menit"`
	DurasiJamKerja float64 `json:"durasi_jam_kerja"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID,
		Nama:           s.Nama,
		JamMasuk:       s.JamMasuk,
		JamPulang:      s.JamPulang,
		ToleransiMenit: s.ToleransiMenit,
		DurasiJamKerja: s.DurasiJamKerja,
	}
}
