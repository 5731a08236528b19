package shiftswap

import (
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type CreateSwapRequest struct {
	Tanggal       string  `json:"tanggal"`
	ShiftTujuanID *string `json:"shift_tujuan_id"` // null requests a day off
	Alasan        string  `json:"alasan"`
}

func (r CreateSwapRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Tanggal); !ok {
		errs = append(errs, validator.ValidationError{Field: "tanggal", Message: "Must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Alasan) {
		errs = append(errs, validator.ValidationError{Field: "alasan", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondSwapRequest struct {
	Status     string  `json:"status"` // approved | rejected
	Keterangan *string `json:"keterangan"`
}

func (r RespondSwapRequest) Validate() error {
	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		return ErrInvalidStatus
	}
	return nil
}

type SwapResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserNama        string  `json:"user_nama,omitempty"`
	Tanggal         string  `json:"tanggal"`
	ShiftAsalID     *string `json:"shift_asal_id"`
	ShiftAsalNama   *string `json:"shift_asal_nama,omitempty"`
	ShiftTujuanID   *string `json:"shift_tujuan_id"`
	ShiftTujuanNama *string `json:"shift_tujuan_nama,omitempty"`
	Alasan          string  `json:"alasan"`
	Status          Status  `json:"status"`
	Keterangan      *string `json:"keterangan,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToResponse(s ShiftChangeRequest) SwapResponse {
	resp := SwapResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		Tanggal:         s.Tanggal.Format("2006-01-02"),
		ShiftAsalID:     s.ShiftAsalID,
		ShiftAsalNama:   s.ShiftAsalNama,
		ShiftTujuanID:   s.ShiftTujuanID,
		ShiftTujuanNama: s.ShiftTujuanNama,
		Alasan:          s.Alasan,
		Status:          s.Status,
		Keterangan:      s.Keterangan,
		CreatedAt:       s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if s.UserNama != nil {
		resp.UserNama = *s.UserNama
	}
	return resp
}
