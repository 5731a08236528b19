package correction

import (
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type CreateKoreksiRequest struct {
	Tanggal       string  `json:"tanggal"`
	JamMasukBaru  *string `json:"jam_masuk_baru"`
	JamPulangBaru *string `json:"jam_pulang_baru"`
	Alasan        string  `json:"alasan"`
}

func (r CreateKoreksiRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Tanggal); !ok {
		errs = append(errs, validator.ValidationError{Field: "tanggal", Message: "Must be YYYY-MM-DD"})
	}
	if r.JamMasukBaru == nil && r.JamPulangBaru == nil {
		errs = append(errs, validator.ValidationError{Field: "jam_masuk_baru", Message: "At least one corrected time is required"})
	}
	if r.JamMasukBaru != nil && !validator.IsValidTimeOfDay(*r.JamMasukBaru) {
		errs = append(errs, validator.ValidationError{Field: "jam_masuk_baru", Message: "Must be HH:MM"})
	}
	if r.JamPulangBaru != nil && !validator.IsValidTimeOfDay(*r.JamPulangBaru) {
		errs = append(errs, validator.ValidationError{Field: "jam_pulang_baru", Message: "Must be HH:MM"})
	}
	if validator.IsEmpty(r.Alasan) {
		errs = append(errs, validator.ValidationError{Field: "alasan", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ValidateKoreksiRequest struct {
	Action  string  `json:"action"` // approve | reject
	Catatan *string `json:"catatan"`
}

func (r ValidateKoreksiRequest) Validate() error {
	if r.Action != "approve" && r.Action != "reject" {
		return ErrInvalidAction
	}
	return nil
}

type KoreksiResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserNama        string  `json:"user_nama,omitempty"`
	Tanggal         string  `json:"tanggal"`
	JamMasukBaru    *string `json:"jam_masuk_baru"`
	JamPulangBaru   *string `json:"jam_pulang_baru"`
	Alasan          string  `json:"alasan"`
	Status          Status  `json:"status"`
	ApproverID      *string `json:"approver_id,omitempty"`
	CatatanApprover *string `json:"catatan_approver,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToResponse(k KoreksiAbsensi) KoreksiResponse {
	resp := KoreksiResponse{
		ID:              k.ID,
		UserID:          k.UserID,
		Tanggal:         k.Tanggal.Format("2006-01-02"),
		JamMasukBaru:    k.JamMasukBaru,
		JamPulangBaru:   k.JamPulangBaru,
		Alasan:          k.Alasan,
		Status:          k.Status,
		ApproverID:      k.ApproverID,
		CatatanApprover: k.CatatanApprover,
		CreatedAt:       k.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if k.UserNama != nil {
		resp.UserNama = *k.UserNama
	}
	if k.DecidedAt != nil {
		s := k.DecidedAt.Format("2006-01-02 15:04:05")
		resp.DecidedAt = &s
	}
	return resp
}
