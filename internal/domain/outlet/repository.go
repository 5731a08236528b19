package outlet

import "context"

type OutletRepository interface {
	Create(ctx context.Context, o Outlet) (Outlet, error)
	GetByID(ctx context.Context, id string) (Outlet, error)
	List(ctx context.Context) ([]Outlet, error)
	ListStores(ctx context.Context) ([]string, error)
	Update(ctx context.Context, o Outlet) error
	Delete(ctx context.Context, id string) error
}
