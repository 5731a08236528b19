package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/correction"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const koreksiColumns = `k.id, k.user_id, k.tanggal, k.jam_masuk_baru, k.jam_pulang_baru, k.alasan,
	   k.status, k.approver_id, k.catatan_approver, k.decided_at, k.created_at, k.updated_at`

type koreksiRepositoryImpl struct {
	db *database.DB
}

func NewKoreksiRepository(db *database.DB) correction.KoreksiRepository {
	return &koreksiRepositoryImpl{db: db}
}

func scanKoreksi(row pgx.Row, withUser bool) (correction.KoreksiAbsensi, error) {
	var k correction.KoreksiAbsensi
	dest := []interface{}{
		&k.ID, &k.UserID, &k.Tanggal, &k.JamMasukBaru, &k.JamPulangBaru, &k.Alasan,
		&k.Status, &k.ApproverID, &k.CatatanApprover, &k.DecidedAt, &k.CreatedAt, &k.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &k.UserNama, &k.UserStore)
	}
	return k, row.Scan(dest...)
}

func collectKoreksi(rows pgx.Rows, withUser bool) ([]correction.KoreksiAbsensi, error) {
	defer rows.Close()

	var entries []correction.KoreksiAbsensi
	for rows.Next() {
		k, err := scanKoreksi(rows, withUser)
		if err != nil {
			return nil, err
		}
		entries = append(entries, k)
	}
	return entries, rows.Err()
}

// Create implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) Create(ctx context.Context, k correction.KoreksiAbsensi) (correction.KoreksiAbsensi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO koreksi_absensi (user_id, tanggal, jam_masuk_baru, jam_pulang_baru, alasan, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, tanggal, jam_masuk_baru, jam_pulang_baru, alasan,
				  status, approver_id, catatan_approver, decided_at, created_at, updated_at
	`

	created, err := scanKoreksi(q.QueryRow(ctx, query,
		k.UserID, k.Tanggal, k.JamMasukBaru, k.JamPulangBaru, k.Alasan, k.Status,
	), false)
	if err != nil {
		return correction.KoreksiAbsensi{}, fmt.Errorf("failed to create koreksi: %w", err)
	}
	return created, nil
}

// GetByID implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) GetByID(ctx context.Context, id string) (correction.KoreksiAbsensi, error) {
	q := GetQuerier(ctx, r.db)

	k, err := scanKoreksi(q.QueryRow(ctx,
		`SELECT `+koreksiColumns+` FROM koreksi_absensi k WHERE k.id = $1`, id,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.KoreksiAbsensi{}, correction.ErrKoreksiNotFound
		}
		return correction.KoreksiAbsensi{}, fmt.Errorf("failed to get koreksi: %w", err)
	}
	return k, nil
}

// ListByUser implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]correction.KoreksiAbsensi, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+koreksiColumns+` FROM koreksi_absensi k WHERE k.user_id = $1 ORDER BY k.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list koreksi: %w", err)
	}
	return collectKoreksi(rows, false)
}

// ListPendingByUsers implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) ListPendingByUsers(ctx context.Context, userIDs []string) ([]correction.KoreksiAbsensi, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + koreksiColumns + `, u.nama, u.penempatan_store
		FROM koreksi_absensi k
		JOIN users u ON u.id = k.user_id
		WHERE k.status = 'pending' AND k.user_id = ANY($1)
		ORDER BY k.created_at
	`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending koreksi: %w", err)
	}
	return collectKoreksi(rows, true)
}

// ListPendingAll implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) ListPendingAll(ctx context.Context) ([]correction.KoreksiAbsensi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + koreksiColumns + `, u.nama, u.penempatan_store
		FROM koreksi_absensi k
		JOIN users u ON u.id = k.user_id
		WHERE k.status = 'pending'
		ORDER BY k.created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending koreksi: %w", err)
	}
	return collectKoreksi(rows, true)
}

// Update implements correction.KoreksiRepository.
func (r *koreksiRepositoryImpl) Update(ctx context.Context, k correction.KoreksiAbsensi) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE koreksi_absensi
		SET status = $2, approver_id = $3, catatan_approver = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, k.ID, k.Status, k.ApproverID, k.CatatanApprover, k.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update koreksi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrKoreksiNotFound
	}
	return nil
}
