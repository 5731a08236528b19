package shiftswap

import "context"

type SwapService interface {
	// CreateRequest files a shift change for one date. A second pending
	// request for the same (user, date) is rejected as a duplicate.
	CreateRequest(ctx context.Context, req CreateSwapRequest) (SwapResponse, error)

	// Respond approves or rejects a pending request. Approval overrides the
	// published schedule for that date and re-points an existing attendance
	// row at the new shift, inside one transaction.
	Respond(ctx context.Context, id string, req RespondSwapRequest) (SwapResponse, error)

	ListMine(ctx context.Context) ([]SwapResponse, error)
	ListPendingForApprover(ctx context.Context) ([]SwapResponse, error)
}
