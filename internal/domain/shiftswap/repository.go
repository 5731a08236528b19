package shiftswap

import (
	"context"
	"time"
)

type SwapRepository interface {
	Create(ctx context.Context, s ShiftChangeRequest) (ShiftChangeRequest, error)
	GetByID(ctx context.Context, id string) (ShiftChangeRequest, error)
	ListByUser(ctx context.Context, userID string) ([]ShiftChangeRequest, error)
	ListPendingByUsers(ctx context.Context, userIDs []string) ([]ShiftChangeRequest, error)
	ListPendingAll(ctx context.Context) ([]ShiftChangeRequest, error)
	Update(ctx context.Context, s ShiftChangeRequest) error

	// GetApprovedByUserAndDate returns the approved override for the pair,
	// or nil. Highest precedence in shift resolution.
	GetApprovedByUserAndDate(ctx context.Context, userID string, date time.Time) (*ShiftChangeRequest, error)

	// GetPendingByUserAndDate returns a pending request for the pair, or
	// nil. Used for the duplicate guard and for display surfacing.
	GetPendingByUserAndDate(ctx context.Context, userID string, date time.Time) (*ShiftChangeRequest, error)
}
