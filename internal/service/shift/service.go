package shift

import (
	"context"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

type ShiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
	userRepo  user.UserRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository, userRepo user.UserRepository) shift.ShiftService {
	return &ShiftServiceImpl{shiftRepo: shiftRepo, userRepo: userRepo}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		Nama:           req.Nama,
		JamMasuk:       req.JamMasuk,
		JamPulang:      req.JamPulang,
		ToleransiMenit: req.ToleransiMenit,
		DurasiJamKerja: req.DurasiJamKerja,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(created), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToResponse(sh))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, id string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	existing.Nama = req.Nama
	existing.JamMasuk = req.JamMasuk
	existing.JamPulang = req.JamPulang
	existing.ToleransiMenit = req.ToleransiMenit
	existing.DurasiJamKerja = req.DurasiJamKerja

	if err := s.shiftRepo.Update(ctx, existing); err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(existing), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}

func (s *ShiftServiceImpl) requireMasterDataAccess(ctx context.Context) error {
	actorID := utils.GetUserID(ctx)
	if actorID == "" {
		return user.ErrMasterDataForbidden
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get acting user: %w", err)
	}
	if !actor.CanManageMasterData() {
		return user.ErrMasterDataForbidden
	}
	return nil
}
