package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// GetDirectReports returns the active users whose atasan_id equals
	// managerID. Used by the hierarchy resolver's iterative traversal.
	GetDirectReports(ctx context.Context, managerID string) ([]User, error)

	// GetByStore returns active users placed at a store; used for the
	// hr_cabang monitoring scope and announcement fan-out.
	GetByStore(ctx context.Context, store string) ([]User, error)

	// GetByIDs returns users for a set of ids, preserving no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)

	ListActive(ctx context.Context) ([]User, error)

	// AdjustSisaCuti adds delta (may be negative) to the user's remaining
	// leave balance inside the current transaction.
	AdjustSisaCuti(ctx context.Context, userID string, delta int) error
}
