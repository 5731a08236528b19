package user

import "context"

// UserService covers the read-side user endpoints.
type UserService interface {
	// Subordinates lists the caller's transitive reports; HR tier sees
	// every active user.
	Subordinates(ctx context.Context, userID string) ([]SubordinateResponse, error)
}
