package leave

import (
	"context"
	"time"
)

type CutiRepository interface {
	Create(ctx context.Context, c Cuti) (Cuti, error)
	GetByID(ctx context.Context, id string) (Cuti, error)
	ListByUser(ctx context.Context, userID string) ([]Cuti, error)
	ListPendingByUsers(ctx context.Context, userIDs []string) ([]Cuti, error)
	ListPendingAll(ctx context.Context) ([]Cuti, error)
	Update(ctx context.Context, c Cuti) error

	// GetApprovedCovering returns the approved leave whose range covers the
	// date, or nil. The classifier's first rule keys off this.
	GetApprovedCovering(ctx context.Context, userID string, date time.Time) (*Cuti, error)

	// GetApprovedOverlapping returns approved leaves intersecting [from, to];
	// history and monitoring prefetch with it.
	GetApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]Cuti, error)
}
