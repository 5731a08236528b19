package outlet

import "context"

// OutletService covers outlet master data. Listing is open to any
// authenticated user (the check-in picker needs it); mutations are gated to
// roles with master-data access.
type OutletService interface {
	Create(ctx context.Context, req UpsertOutletRequest) (OutletResponse, error)
	List(ctx context.Context) ([]OutletResponse, error)
	Update(ctx context.Context, id string, req UpsertOutletRequest) (OutletResponse, error)
	Delete(ctx context.Context, id string) error
}
