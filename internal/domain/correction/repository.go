package correction

import "context"

type KoreksiRepository interface {
	Create(ctx context.Context, k KoreksiAbsensi) (KoreksiAbsensi, error)
	GetByID(ctx context.Context, id string) (KoreksiAbsensi, error)
	ListByUser(ctx context.Context, userID string) ([]KoreksiAbsensi, error)

	// ListPendingByUsers returns pending requests whose requester is in the
	// given set; used to build an approver's inbox.
	ListPendingByUsers(ctx context.Context, userIDs []string) ([]KoreksiAbsensi, error)

	ListPendingAll(ctx context.Context) ([]KoreksiAbsensi, error)

	Update(ctx context.Context, k KoreksiAbsensi) error
}
