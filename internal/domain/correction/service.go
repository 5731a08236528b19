package correction

import "context"

type KoreksiService interface {
	// CreateRequest files a correction. Multiple pending requests for the
	// same date are allowed; the original system never guarded this.
	CreateRequest(ctx context.Context, req CreateKoreksiRequest) (KoreksiResponse, error)

	// ValidateRequest approves or rejects a pending request. Approval
	// upserts the Absensi row and recomputes lateness and hours inside one
	// transaction; notifications are sent after commit and are non-fatal.
	ValidateRequest(ctx context.Context, id string, req ValidateKoreksiRequest) (KoreksiResponse, error)

	// ListMine returns the caller's own requests.
	ListMine(ctx context.Context) ([]KoreksiResponse, error)

	// ListPendingForApprover returns the pending requests the caller may act
	// on: everything for HR tiers, hierarchy-scoped otherwise.
	ListPendingForApprover(ctx context.Context) ([]KoreksiResponse, error)
}
