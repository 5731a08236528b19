package outlet

import (
	"github.com/absenin/absensi-backend-go/internal/pkg/validator"
)

type UpsertOutletRequest struct {
	Nama        string  `json:"nama"`
	Store       string  `json:"store"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusMeter int     `json:"radius_meter"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpsertOutletRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Nama) {
		errs = append(errs, validator.ValidationError{Field: "nama", Message: "Outlet name is required"})
	}
	if validator.IsEmpty(r.Store) {
		errs = append(errs, validator.ValidationError{Field: "store", Message: "Store name is required"})
	}
	if r.RadiusMeter <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meter", Message: "Radius must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OutletResponse struct {
	ID          string  `json:"id"`
	Nama        string  `json:"nama"`
	Store       string  `json:"store"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusMeter int     `json:"radius_meter"`
	IsActive    bool    `json:"is_active"`
}

func ToResponse(o Outlet) OutletResponse {
	return OutletResponse{
		ID:          o.ID,
		Nama:        o.Nama,
		Store:       o.Store,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		RadiusMeter: o.RadiusMeter,
		IsActive:    o.IsActive,
	}
}
