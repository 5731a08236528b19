package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const cutiColumns = `c.id, c.user_id, c.jenis, c.tanggal_mulai, c.tanggal_akhir, c.jumlah_hari,
	   c.alasan, c.bukti_url, c.status, c.approver_id, c.catatan_approver, c.decided_at,
	   c.created_at, c.updated_at`

type cutiRepositoryImpl struct {
	db *database.DB
}

func NewCutiRepository(db *database.DB) leave.CutiRepository {
	return &cutiRepositoryImpl{db: db}
}

func scanCuti(row pgx.Row, withUser bool) (leave.Cuti, error) {
	var c leave.Cuti
	dest := []interface{}{
		&c.ID, &c.UserID, &c.Jenis, &c.TanggalMulai, &c.TanggalAkhir, &c.JumlahHari,
		&c.Alasan, &c.BuktiURL, &c.Status, &c.ApproverID, &c.CatatanApprover, &c.DecidedAt,
		&c.CreatedAt, &c.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &c.UserNama, &c.UserStore)
	}
	return c, row.Scan(dest...)
}

func collectCuti(rows pgx.Rows, withUser bool) ([]leave.Cuti, error) {
	defer rows.Close()

	var entries []leave.Cuti
	for rows.Next() {
		c, err := scanCuti(rows, withUser)
		if err != nil {
			return nil, err
		}
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

// Create implements leave.CutiRepository.
func (r *cutiRepositoryImpl) Create(ctx context.Context, c leave.Cuti) (leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cuti (user_id, jenis, tanggal_mulai, tanggal_akhir, jumlah_hari, alasan, bukti_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, jenis, tanggal_mulai, tanggal_akhir, jumlah_hari,
				  alasan, bukti_url, status, approver_id, catatan_approver, decided_at,
				  created_at, updated_at
	`

	created, err := scanCuti(q.QueryRow(ctx, query,
		c.UserID, c.Jenis, c.TanggalMulai, c.TanggalAkhir, c.JumlahHari, c.Alasan, c.BuktiURL, c.Status,
	), false)
	if err != nil {
		return leave.Cuti{}, fmt.Errorf("failed to create cuti: %w", err)
	}
	return created, nil
}

// GetByID implements leave.CutiRepository.
func (r *cutiRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCuti(q.QueryRow(ctx, `SELECT `+cutiColumns+` FROM cuti c WHERE c.id = $1`, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Cuti{}, leave.ErrCutiNotFound
		}
		return leave.Cuti{}, fmt.Errorf("failed to get cuti: %w", err)
	}
	return c, nil
}

// ListByUser implements leave.CutiRepository.
func (r *cutiRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+cutiColumns+` FROM cuti c WHERE c.user_id = $1 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cuti: %w", err)
	}
	return collectCuti(rows, false)
}

// ListPendingByUsers implements leave.CutiRepository.
func (r *cutiRepositoryImpl) ListPendingByUsers(ctx context.Context, userIDs []string) ([]leave.Cuti, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + cutiColumns + `, u.nama, u.penempatan_store
		FROM cuti c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = 'pending' AND c.user_id = ANY($1)
		ORDER BY c.created_at
	`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cuti: %w", err)
	}
	return collectCuti(rows, true)
}

// ListPendingAll implements leave.CutiRepository.
func (r *cutiRepositoryImpl) ListPendingAll(ctx context.Context) ([]leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + cutiColumns + `, u.nama, u.penempatan_store
		FROM cuti c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = 'pending'
		ORDER BY c.created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cuti: %w", err)
	}
	return collectCuti(rows, true)
}

// Update implements leave.CutiRepository.
func (r *cutiRepositoryImpl) Update(ctx context.Context, c leave.Cuti) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cuti
		SET status = $2, approver_id = $3, catatan_approver = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, c.ID, c.Status, c.ApproverID, c.CatatanApprover, c.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update cuti: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrCutiNotFound
	}
	return nil
}

// GetApprovedCovering implements leave.CutiRepository.
func (r *cutiRepositoryImpl) GetApprovedCovering(ctx context.Context, userID string, date time.Time) (*leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCuti(q.QueryRow(ctx,
		`SELECT `+cutiColumns+` FROM cuti c
		 WHERE c.user_id = $1 AND c.status = 'approved' AND $2 BETWEEN c.tanggal_mulai AND c.tanggal_akhir
		 LIMIT 1`,
		userID, date,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get covering cuti: %w", err)
	}
	return &c, nil
}

// GetApprovedOverlapping implements leave.CutiRepository.
func (r *cutiRepositoryImpl) GetApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.Cuti, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+cutiColumns+` FROM cuti c
		 WHERE c.user_id = $1 AND c.status = 'approved'
		   AND c.tanggal_mulai <= $3 AND c.tanggal_akhir >= $2
		 ORDER BY c.tanggal_mulai`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get overlapping cuti: %w", err)
	}
	return collectCuti(rows, false)
}
