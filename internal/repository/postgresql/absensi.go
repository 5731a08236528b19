package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const absensiColumns = `a.id, a.user_id, a.tanggal, a.shift_id, a.outlet_id,
	   a.jam_masuk, a.jam_pulang, a.status_hadir, a.menit_terlambat, a.status_terlambat,
	   a.menit_pulang_cepat, a.pulang_cepat, a.total_jam_kerja,
	   a.latitude_masuk, a.longitude_masuk, a.latitude_pulang, a.longitude_pulang,
	   a.foto_masuk_url, a.foto_pulang_url, a.catatan, a.is_locked,
	   a.created_at, a.updated_at`

type absensiRepositoryImpl struct {
	db *database.DB
}

func NewAbsensiRepository(db *database.DB) attendance.AbsensiRepository {
	return &absensiRepositoryImpl{db: db}
}

func scanAbsensi(row pgx.Row) (attendance.Absensi, error) {
	var a attendance.Absensi
	err := row.Scan(
		&a.ID, &a.UserID, &a.Tanggal, &a.ShiftID, &a.OutletID,
		&a.JamMasuk, &a.JamPulang, &a.StatusHadir, &a.MenitTerlambat, &a.StatusTerlambat,
		&a.MenitPulangCepat, &a.PulangCepat, &a.TotalJamKerja,
		&a.LatitudeMasuk, &a.LongitudeMasuk, &a.LatitudePulang, &a.LongitudePulang,
		&a.FotoMasukURL, &a.FotoPulangURL, &a.Catatan, &a.IsLocked,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func collectAbsensi(rows pgx.Rows) ([]attendance.Absensi, error) {
	defer rows.Close()

	var entries []attendance.Absensi
	for rows.Next() {
		a, err := scanAbsensi(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// Create implements attendance.AbsensiRepository. The unique index on
// (user_id, tanggal) settles concurrent check-in races.
func (r *absensiRepositoryImpl) Create(ctx context.Context, a attendance.Absensi) (attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absensi (
			user_id, tanggal, shift_id, outlet_id, jam_masuk, jam_pulang,
			status_hadir, menit_terlambat, status_terlambat,
			menit_pulang_cepat, pulang_cepat, total_jam_kerja,
			latitude_masuk, longitude_masuk, latitude_pulang, longitude_pulang,
			foto_masuk_url, foto_pulang_url, catatan, is_locked
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + absensiSelfColumns()

	created, err := scanAbsensi(q.QueryRow(ctx, query,
		a.UserID, a.Tanggal, a.ShiftID, a.OutletID, a.JamMasuk, a.JamPulang,
		a.StatusHadir, a.MenitTerlambat, a.StatusTerlambat,
		a.MenitPulangCepat, a.PulangCepat, a.TotalJamKerja,
		a.LatitudeMasuk, a.LongitudeMasuk, a.LatitudePulang, a.LongitudePulang,
		a.FotoMasukURL, a.FotoPulangURL, a.Catatan, a.IsLocked,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Absensi{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Absensi{}, fmt.Errorf("failed to create absensi: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAbsensi(q.QueryRow(ctx, `SELECT `+absensiColumns+` FROM absensi a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Absensi{}, attendance.ErrAbsensiNotFound
		}
		return attendance.Absensi{}, fmt.Errorf("failed to get absensi: %w", err)
	}
	return a, nil
}

// GetByUserAndDate implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAbsensi(q.QueryRow(ctx,
		`SELECT `+absensiColumns+` FROM absensi a WHERE a.user_id = $1 AND a.tanggal = $2`,
		userID, date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get absensi by date: %w", err)
	}
	return &a, nil
}

// GetByUserAndRange implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+absensiColumns+` FROM absensi a WHERE a.user_id = $1 AND a.tanggal BETWEEN $2 AND $3 ORDER BY a.tanggal`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get absensi range: %w", err)
	}
	return collectAbsensi(rows)
}

// GetByUsersAndDate implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) GetByUsersAndDate(ctx context.Context, userIDs []string, date time.Time) ([]attendance.Absensi, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absensiColumns + `, u.nama, u.penempatan_store, s.nama
		FROM absensi a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.user_id = ANY($1) AND a.tanggal = $2
	`

	rows, err := q.Query(ctx, query, userIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get absensi for users: %w", err)
	}
	defer rows.Close()

	var entries []attendance.Absensi
	for rows.Next() {
		var a attendance.Absensi
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Tanggal, &a.ShiftID, &a.OutletID,
			&a.JamMasuk, &a.JamPulang, &a.StatusHadir, &a.MenitTerlambat, &a.StatusTerlambat,
			&a.MenitPulangCepat, &a.PulangCepat, &a.TotalJamKerja,
			&a.LatitudeMasuk, &a.LongitudeMasuk, &a.LatitudePulang, &a.LongitudePulang,
			&a.FotoMasukURL, &a.FotoPulangURL, &a.Catatan, &a.IsLocked,
			&a.CreatedAt, &a.UpdatedAt,
			&a.UserNama, &a.UserStore, &a.ShiftNama,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// Update implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) Update(ctx context.Context, a attendance.Absensi) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absensi
		SET shift_id = $2, outlet_id = $3, jam_masuk = $4, jam_pulang = $5,
			status_hadir = $6, menit_terlambat = $7, status_terlambat = $8,
			menit_pulang_cepat = $9, pulang_cepat = $10, total_jam_kerja = $11,
			latitude_pulang = $12, longitude_pulang = $13, foto_pulang_url = $14,
			catatan = $15, is_locked = $16, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID, a.ShiftID, a.OutletID, a.JamMasuk, a.JamPulang,
		a.StatusHadir, a.MenitTerlambat, a.StatusTerlambat,
		a.MenitPulangCepat, a.PulangCepat, a.TotalJamKerja,
		a.LatitudePulang, a.LongitudePulang, a.FotoPulangURL,
		a.Catatan, a.IsLocked,
	)
	if err != nil {
		return fmt.Errorf("failed to update absensi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAbsensiNotFound
	}
	return nil
}

// Upsert implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) Upsert(ctx context.Context, a attendance.Absensi) (attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absensi (
			user_id, tanggal, shift_id, outlet_id, jam_masuk, jam_pulang,
			status_hadir, menit_terlambat, status_terlambat,
			menit_pulang_cepat, pulang_cepat, total_jam_kerja,
			latitude_masuk, longitude_masuk, latitude_pulang, longitude_pulang,
			foto_masuk_url, foto_pulang_url, catatan, is_locked
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (user_id, tanggal)
		DO UPDATE SET
			shift_id = EXCLUDED.shift_id,
			jam_masuk = EXCLUDED.jam_masuk,
			jam_pulang = EXCLUDED.jam_pulang,
			status_hadir = EXCLUDED.status_hadir,
			menit_terlambat = EXCLUDED.menit_terlambat,
			status_terlambat = EXCLUDED.status_terlambat,
			menit_pulang_cepat = EXCLUDED.menit_pulang_cepat,
			pulang_cepat = EXCLUDED.pulang_cepat,
			total_jam_kerja = EXCLUDED.total_jam_kerja,
			catatan = EXCLUDED.catatan,
			is_locked = EXCLUDED.is_locked,
			updated_at = NOW()
		RETURNING ` + absensiSelfColumns()

	saved, err := scanAbsensi(q.QueryRow(ctx, query,
		a.UserID, a.Tanggal, a.ShiftID, a.OutletID, a.JamMasuk, a.JamPulang,
		a.StatusHadir, a.MenitTerlambat, a.StatusTerlambat,
		a.MenitPulangCepat, a.PulangCepat, a.TotalJamKerja,
		a.LatitudeMasuk, a.LongitudeMasuk, a.LatitudePulang, a.LongitudePulang,
		a.FotoMasukURL, a.FotoPulangURL, a.Catatan, a.IsLocked,
	))
	if err != nil {
		return attendance.Absensi{}, fmt.Errorf("failed to upsert absensi: %w", err)
	}
	return saved, nil
}

// ListOpenBefore implements attendance.AbsensiRepository.
func (r *absensiRepositoryImpl) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Absensi, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+absensiColumns+` FROM absensi a
		 WHERE a.jam_masuk IS NOT NULL AND a.jam_pulang IS NULL AND a.tanggal < $1
		 ORDER BY a.tanggal`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open absensi: %w", err)
	}
	return collectAbsensi(rows)
}

// absensiSelfColumns strips the query alias for RETURNING clauses.
func absensiSelfColumns() string {
	return `id, user_id, tanggal, shift_id, outlet_id,
	   jam_masuk, jam_pulang, status_hadir, menit_terlambat, status_terlambat,
	   menit_pulang_cepat, pulang_cepat, total_jam_kerja,
	   latitude_masuk, longitude_masuk, latitude_pulang, longitude_pulang,
	   foto_masuk_url, foto_pulang_url, catatan, is_locked,
	   created_at, updated_at`
}
