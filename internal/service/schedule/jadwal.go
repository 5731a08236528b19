package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
)

type jadwalService struct {
	jadwalRepo schedule.JadwalRepository
	shiftRepo  shift.ShiftRepository
}

func NewJadwalService(jadwalRepo schedule.JadwalRepository, shiftRepo shift.ShiftRepository) schedule.JadwalService {
	return &jadwalService{jadwalRepo: jadwalRepo, shiftRepo: shiftRepo}
}

func (s *jadwalService) Upsert(ctx context.Context, req schedule.UpsertJadwalRequest) (schedule.JadwalResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.JadwalResponse{}, err
	}
	tanggal, _ := time.Parse("2006-01-02", req.Tanggal)

	var resolved *shift.Shift
	if req.ShiftID != nil {
		sh, err := s.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			return schedule.JadwalResponse{}, fmt.Errorf("resolving shift: %w", err)
		}
		resolved = &sh
	}

	row, err := s.jadwalRepo.Upsert(ctx, schedule.Jadwal{
		UserID:  req.UserID,
		Tanggal: tanggal,
		ShiftID: req.ShiftID,
	})
	if err != nil {
		return schedule.JadwalResponse{}, err
	}
	row.Shift = resolved
	return schedule.ToResponse(row), nil
}

func (s *jadwalService) GetMonth(ctx context.Context, userID string, month, year int) ([]schedule.JadwalResponse, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)

	rows, err := s.jadwalRepo.GetByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]schedule.JadwalResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, schedule.ToResponse(row))
	}
	return responses, nil
}

func (s *jadwalService) Delete(ctx context.Context, userID string, date string) error {
	tanggal, err := time.Parse("2006-01-02", date)
	if err != nil {
		return schedule.ErrJadwalNotFound
	}
	return s.jadwalRepo.Delete(ctx, userID, tanggal)
}
