package schedule

import (
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type UpsertJadwalRequest struct {
	UserID  string  `json:"user_id"`
	Tanggal string  `json:"tanggal"`
	ShiftID *string `json:"shift_id"` // null publishes an explicit day off
}

func (r UpsertJadwalRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "User is required"})
	}
	if _, ok := validator.IsValidDate(r.Tanggal); !ok {
		errs = append(errs, validator.ValidationError{Field: "tanggal", Message: "Must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JadwalResponse struct {
	ID      string               `json:"id"`
	UserID  string               `json:"user_id"`
	Tanggal string               `json:"tanggal"`
	Shift   *shift.ShiftResponse `json:"shift"`
	State   State                `json:"state"`
}

func ToResponse(j Jadwal) JadwalResponse {
	resp := JadwalResponse{
		ID:      j.ID,
		UserID:  j.UserID,
		Tanggal: j.Tanggal.Format("2006-01-02"),
		State:   StateExplicitOff,
	}
	if j.Shift != nil {
		s := shift.ToResponse(*j.Shift)
		resp.Shift = &s
		resp.State = StateScheduled
	}
	return resp
}
