package leave

import "context"

type CutiService interface {
	Apply(ctx context.Context, req ApplyCutiRequest) (CutiResponse, error)

	// Validate approves or rejects a pending leave. Approval expands the
	// range into locked Absensi rows and, for annual leave, decrements the
	// remaining balance, all inside one transaction.
	Validate(ctx context.Context, id string, req ValidateCutiRequest) (CutiResponse, error)

	ListMine(ctx context.Context) ([]CutiResponse, error)
	ListPendingForApprover(ctx context.Context) ([]CutiResponse, error)
}
