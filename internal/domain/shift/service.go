package shift

import "context"

// ShiftService covers shift master data. Mutations are gated to roles with
// master-data access.
type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)
	Update(ctx context.Context, id string, req CreateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}
