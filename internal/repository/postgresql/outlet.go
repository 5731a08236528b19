package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const outletColumns = `id, nama, store, latitude, longitude, radius_meter, is_active, created_at, updated_at`

type outletRepositoryImpl struct {
	db *database.DB
}

func NewOutletRepository(db *database.DB) outlet.OutletRepository {
	return &outletRepositoryImpl{db: db}
}

func scanOutlet(row pgx.Row) (outlet.Outlet, error) {
	var o outlet.Outlet
	err := row.Scan(
		&o.ID,
		&o.Nama,
		&o.Store,
		&o.Latitude,
		&o.Longitude,
		&o.RadiusMeter,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// Create implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Create(ctx context.Context, o outlet.Outlet) (outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO outlets (nama, store, latitude, longitude, radius_meter, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + outletColumns

	created, err := scanOutlet(q.QueryRow(ctx, query,
		o.Nama, o.Store, o.Latitude, o.Longitude, o.RadiusMeter, o.IsActive,
	))
	if err != nil {
		return outlet.Outlet{}, fmt.Errorf("failed to create outlet: %w", err)
	}
	return created, nil
}

// GetByID implements outlet.OutletRepository.
func (r *outletRepositoryImpl) GetByID(ctx context.Context, id string) (outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOutlet(q.QueryRow(ctx, `SELECT `+outletColumns+` FROM outlets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outlet.Outlet{}, outlet.ErrOutletNotFound
		}
		return outlet.Outlet{}, fmt.Errorf("failed to get outlet: %w", err)
	}
	return o, nil
}

// List implements outlet.OutletRepository.
func (r *outletRepositoryImpl) List(ctx context.Context) ([]outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+outletColumns+` FROM outlets ORDER BY store, nama`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	defer rows.Close()

	var outlets []outlet.Outlet
	for rows.Next() {
		o, err := scanOutlet(rows)
		if err != nil {
			return nil, err
		}
		outlets = append(outlets, o)
	}
	return outlets, rows.Err()
}

// ListStores implements outlet.OutletRepository.
func (r *outletRepositoryImpl) ListStores(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT store FROM outlets WHERE is_active = TRUE ORDER BY store`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []string
	for rows.Next() {
		var store string
		if err := rows.Scan(&store); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// Update implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Update(ctx context.Context, o outlet.Outlet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE outlets
		SET nama = $2, store = $3, latitude = $4, longitude = $5,
			radius_meter = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, o.ID, o.Nama, o.Store, o.Latitude, o.Longitude, o.RadiusMeter, o.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update outlet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return outlet.ErrOutletNotFound
	}
	return nil
}

// Delete implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Attendance history keeps its outlet reference; deactivate instead of
	// removing the row.
	tag, err := q.Exec(ctx, `UPDATE outlets SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate outlet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return outlet.ErrOutletNotFound
	}
	return nil
}
