package leave

import (
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type ApplyCutiRequest struct {
	Jenis        string  `json:"jenis"`
	TanggalMulai string  `json:"tanggal_mulai"`
	TanggalAkhir string  `json:"tanggal_akhir"`
	Alasan       string  `json:"alasan"`
	BuktiURL     *string `json:"bukti_url"`
}

func (r ApplyCutiRequest) Validate() error {
	var errs validator.ValidationErrors
	switch Jenis(r.Jenis) {
	case JenisTahunan, JenisSakit, JenisIzin, JenisPenting, JenisOff:
	default:
		errs = append(errs, validator.ValidationError{Field: "jenis", Message: "Unknown leave type"})
	}
	mulai, okMulai := validator.IsValidDate(r.TanggalMulai)
	if !okMulai {
		errs = append(errs, validator.ValidationError{Field: "tanggal_mulai", Message: "Must be YYYY-MM-DD"})
	}
	akhir, okAkhir := validator.IsValidDate(r.TanggalAkhir)
	if !okAkhir {
		errs = append(errs, validator.ValidationError{Field: "tanggal_akhir", Message: "Must be YYYY-MM-DD"})
	}
	if okMulai && okAkhir && akhir.Before(mulai) {
		errs = append(errs, validator.ValidationError{Field: "tanggal_akhir", Message: "Must not precede start date"})
	}
	if validator.IsEmpty(r.Alasan) {
		errs = append(errs, validator.ValidationError{Field: "alasan", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ValidateCutiRequest struct {
	Action  string  `json:"action"` // approve | reject
	Catatan *string `json:"catatan"`
}

func (r ValidateCutiRequest) Validate() error {
	if r.Action != "approve" && r.Action != "reject" {
		return ErrInvalidAction
	}
	return nil
}

type CutiResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserNama        string  `json:"user_nama,omitempty"`
	Jenis           Jenis   `json:"jenis"`
	TanggalMulai    string  `json:"tanggal_mulai"`
	TanggalAkhir    string  `json:"tanggal_akhir"`
	JumlahHari      int     `json:"jumlah_hari"`
	Alasan          string  `json:"alasan"`
	BuktiURL        *string `json:"bukti_url,omitempty"`
	Status          Status  `json:"status"`
	ApproverID      *string `json:"approver_id,omitempty"`
	CatatanApprover *string `json:"catatan_approver,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToResponse(c Cuti) CutiResponse {
	resp := CutiResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Jenis:           c.Jenis,
		TanggalMulai:    c.TanggalMulai.Format("2006-01-02"),
		TanggalAkhir:    c.TanggalAkhir.Format("2006-01-02"),
		JumlahHari:      c.JumlahHari,
		Alasan:          c.Alasan,
		BuktiURL:        c.BuktiURL,
		Status:          c.Status,
		ApproverID:      c.ApproverID,
		CatatanApprover: c.CatatanApprover,
		CreatedAt:       c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if c.UserNama != nil {
		resp.UserNama = *c.UserNama
	}
	return resp
}
