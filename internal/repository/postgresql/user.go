package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, nama, email, password_hash, role, atasan_id, shift_default_id,
	   penempatan_store, is_active, jatah_cuti, sisa_cuti, join_date, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Nama,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.AtasanID,
		&u.ShiftDefaultID,
		&u.PenempatanStore,
		&u.IsActive,
		&u.JatahCuti,
		&u.SisaCuti,
		&u.JoinDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			nama, email, password_hash, role, atasan_id, shift_default_id,
			penempatan_store, is_active, jatah_cuti, sisa_cuti, join_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.Nama,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.AtasanID,
		newUser.ShiftDefaultID,
		newUser.PenempatanStore,
		newUser.IsActive,
		newUser.JatahCuti,
		newUser.SisaCuti,
		newUser.JoinDate,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET nama             = COALESCE($2, nama),
			role             = COALESCE($3, role),
			atasan_id        = COALESCE($4, atasan_id),
			shift_default_id = COALESCE($5, shift_default_id),
			penempatan_store = COALESCE($6, penempatan_store),
			is_active        = COALESCE($7, is_active),
			jatah_cuti       = COALESCE($8, jatah_cuti),
			sisa_cuti        = COALESCE($9, sisa_cuti),
			updated_at       = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.Nama,
		req.Role,
		req.AtasanID,
		req.ShiftDefaultID,
		req.PenempatanStore,
		req.IsActive,
		req.JatahCuti,
		req.SisaCuti,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// GetDirectReports implements user.UserRepository.
func (r *userRepositoryImpl) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE atasan_id = $1 AND is_active = TRUE ORDER BY nama`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get direct reports: %w", err)
	}
	return collectUsers(rows)
}

// GetByStore implements user.UserRepository.
func (r *userRepositoryImpl) GetByStore(ctx context.Context, store string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE penempatan_store = $1 AND is_active = TRUE ORDER BY nama`

	rows, err := q.Query(ctx, query, store)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by store: %w", err)
	}
	return collectUsers(rows)
}

// GetByIDs implements user.UserRepository.
func (r *userRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return collectUsers(rows)
}

// ListActive implements user.UserRepository.
func (r *userRepositoryImpl) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE ORDER BY nama`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return collectUsers(rows)
}

// AdjustSisaCuti implements user.UserRepository.
func (r *userRepositoryImpl) AdjustSisaCuti(ctx context.Context, userID string, delta int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET sisa_cuti = sisa_cuti + $2, updated_at = NOW() WHERE id = $1`,
		userID, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
