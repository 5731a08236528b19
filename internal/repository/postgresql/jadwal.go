package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jadwalRepositoryImpl struct {
	db *database.DB
}

func NewJadwalRepository(db *database.DB) schedule.JadwalRepository {
	return &jadwalRepositoryImpl{db: db}
}

// GetByUserAndDate implements schedule.JadwalRepository.
func (r *jadwalRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*schedule.Jadwal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.user_id, j.tanggal, j.shift_id, j.created_at, j.updated_at,
			   s.id, s.nama, s.jam_masuk, s.jam_pulang, s.toleransi_menit, s.durasi_jam_kerja
		FROM jadwal j
		LEFT JOIN shifts s ON s.id = j.shift_id
		WHERE j.user_id = $1 AND j.tanggal = $2
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get jadwal: %w", err)
	}
	entries, err := collectJadwal(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// GetByUserAndRange implements schedule.JadwalRepository.
func (r *jadwalRepositoryImpl) GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]schedule.Jadwal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.user_id, j.tanggal, j.shift_id, j.created_at, j.updated_at,
			   s.id, s.nama, s.jam_masuk, s.jam_pulang, s.toleransi_menit, s.durasi_jam_kerja
		FROM jadwal j
		LEFT JOIN shifts s ON s.id = j.shift_id
		WHERE j.user_id = $1 AND j.tanggal BETWEEN $2 AND $3
		ORDER BY j.tanggal
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get jadwal range: %w", err)
	}
	return collectJadwal(rows)
}

// Upsert implements schedule.JadwalRepository.
func (r *jadwalRepositoryImpl) Upsert(ctx context.Context, j schedule.Jadwal) (schedule.Jadwal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jadwal (user_id, tanggal, shift_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, tanggal)
		DO UPDATE SET shift_id = EXCLUDED.shift_id, updated_at = NOW()
		RETURNING id, user_id, tanggal, shift_id, created_at, updated_at
	`

	var saved schedule.Jadwal
	err := q.QueryRow(ctx, query, j.UserID, j.Tanggal, j.ShiftID).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.Tanggal,
		&saved.ShiftID,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return schedule.Jadwal{}, fmt.Errorf("failed to upsert jadwal: %w", err)
	}
	return saved, nil
}

// UpdateShift implements schedule.JadwalRepository.
func (r *jadwalRepositoryImpl) UpdateShift(ctx context.Context, userID string, date time.Time, shiftID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE jadwal SET shift_id = $3, updated_at = NOW() WHERE user_id = $1 AND tanggal = $2`,
		userID, date, shiftID,
	)
	if err != nil {
		return fmt.Errorf("failed to update jadwal shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrJadwalNotFound
	}
	return nil
}

// Delete implements schedule.JadwalRepository.
func (r *jadwalRepositoryImpl) Delete(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM jadwal WHERE user_id = $1 AND tanggal = $2`, userID, date)
	if err != nil {
		return fmt.Errorf("failed to delete jadwal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrJadwalNotFound
	}
	return nil
}

func collectJadwal(rows pgx.Rows) ([]schedule.Jadwal, error) {
	defer rows.Close()

	var entries []schedule.Jadwal
	for rows.Next() {
		var (
			j              schedule.Jadwal
			shiftID        *string
			nama           *string
			jamMasuk       *string
			jamPulang      *string
			toleransiMenit *int
			durasi         *float64
		)
		err := rows.Scan(
			&j.ID, &j.UserID, &j.Tanggal, &j.ShiftID, &j.CreatedAt, &j.UpdatedAt,
			&shiftID, &nama, &jamMasuk, &jamPulang, &toleransiMenit, &durasi,
		)
		if err != nil {
			return nil, err
		}
		if shiftID != nil {
			j.Shift = &shift.Shift{
				ID:             *shiftID,
				Nama:           *nama,
				JamMasuk:       *jamMasuk,
				JamPulang:      *jamPulang,
				ToleransiMenit: *toleransiMenit,
				DurasiJamKerja: *durasi,
			}
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}
