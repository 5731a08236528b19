package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const swapColumns = `r.id, r.user_id, r.tanggal, r.shift_asal_id, r.shift_tujuan_id, r.alasan,
	   r.status, r.approver_id, r.keterangan, r.decided_at, r.created_at, r.updated_at`

type swapRepositoryImpl struct {
	db *database.DB
}

func NewSwapRepository(db *database.DB) shiftswap.SwapRepository {
	return &swapRepositoryImpl{db: db}
}

func scanSwap(row pgx.Row, withJoins bool) (shiftswap.ShiftChangeRequest, error) {
	var s shiftswap.ShiftChangeRequest
	dest := []interface{}{
		&s.ID, &s.UserID, &s.Tanggal, &s.ShiftAsalID, &s.ShiftTujuanID, &s.Alasan,
		&s.Status, &s.ApproverID, &s.Keterangan, &s.DecidedAt, &s.CreatedAt, &s.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &s.UserNama, &s.ShiftAsalNama, &s.ShiftTujuanNama)
	}
	return s, row.Scan(dest...)
}

func collectSwaps(rows pgx.Rows, withJoins bool) ([]shiftswap.ShiftChangeRequest, error) {
	defer rows.Close()

	var entries []shiftswap.ShiftChangeRequest
	for rows.Next() {
		s, err := scanSwap(rows, withJoins)
		if err != nil {
			return nil, err
		}
		entries = append(entries, s)
	}
	return entries, rows.Err()
}

const swapJoinColumns = swapColumns + `, u.nama, sa.nama, st.nama`

const swapJoins = `
	FROM shift_change_requests r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN shifts sa ON sa.id = r.shift_asal_id
	LEFT JOIN shifts st ON st.id = r.shift_tujuan_id
`

// Create implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) Create(ctx context.Context, s shiftswap.ShiftChangeRequest) (shiftswap.ShiftChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_change_requests (user_id, tanggal, shift_asal_id, shift_tujuan_id, alasan, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, tanggal, shift_asal_id, shift_tujuan_id, alasan,
				  status, approver_id, keterangan, decided_at, created_at, updated_at
	`

	created, err := scanSwap(q.QueryRow(ctx, query,
		s.UserID, s.Tanggal, s.ShiftAsalID, s.ShiftTujuanID, s.Alasan, s.Status,
	), false)
	if err != nil {
		return shiftswap.ShiftChangeRequest{}, fmt.Errorf("failed to create shift change request: %w", err)
	}
	return created, nil
}

// GetByID implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) GetByID(ctx context.Context, id string) (shiftswap.ShiftChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSwap(q.QueryRow(ctx,
		`SELECT `+swapColumns+` FROM shift_change_requests r WHERE r.id = $1`, id,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shiftswap.ShiftChangeRequest{}, shiftswap.ErrSwapNotFound
		}
		return shiftswap.ShiftChangeRequest{}, fmt.Errorf("failed to get shift change request: %w", err)
	}
	return s, nil
}

// ListByUser implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]shiftswap.ShiftChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+swapJoinColumns+swapJoins+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift change requests: %w", err)
	}
	return collectSwaps(rows, true)
}

// ListPendingByUsers implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) ListPendingByUsers(ctx context.Context, userIDs []string) ([]shiftswap.ShiftChangeRequest, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+swapJoinColumns+swapJoins+` WHERE r.status = 'pending' AND r.user_id = ANY($1) ORDER BY r.created_at`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending shift change requests: %w", err)
	}
	return collectSwaps(rows, true)
}

// ListPendingAll implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) ListPendingAll(ctx context.Context) ([]shiftswap.ShiftChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+swapJoinColumns+swapJoins+` WHERE r.status = 'pending' ORDER BY r.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending shift change requests: %w", err)
	}
	return collectSwaps(rows, true)
}

// Update implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) Update(ctx context.Context, s shiftswap.ShiftChangeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_change_requests
		SET status = $2, approver_id = $3, keterangan = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, s.ID, s.Status, s.ApproverID, s.Keterangan, s.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update shift change request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shiftswap.ErrSwapNotFound
	}
	return nil
}

// GetApprovedByUserAndDate implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) GetApprovedByUserAndDate(ctx context.Context, userID string, date time.Time) (*shiftswap.ShiftChangeRequest, error) {
	return r.getByUserDateStatus(ctx, userID, date, "approved")
}

// GetPendingByUserAndDate implements shiftswap.SwapRepository.
func (r *swapRepositoryImpl) GetPendingByUserAndDate(ctx context.Context, userID string, date time.Time) (*shiftswap.ShiftChangeRequest, error) {
	return r.getByUserDateStatus(ctx, userID, date, "pending")
}

func (r *swapRepositoryImpl) getByUserDateStatus(ctx context.Context, userID string, date time.Time, status string) (*shiftswap.ShiftChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	// decided_at DESC so the latest approval wins when history holds more
	// than one decided request for the date.
	s, err := scanSwap(q.QueryRow(ctx,
		`SELECT `+swapColumns+` FROM shift_change_requests r
		 WHERE r.user_id = $1 AND r.tanggal = $2 AND r.status = $3
		 ORDER BY r.decided_at DESC NULLS LAST, r.created_at DESC
		 LIMIT 1`,
		userID, date, status,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift change request by date: %w", err)
	}
	return &s, nil
}
