package outlet

import (
	"context"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

type OutletServiceImpl struct {
	outletRepo outlet.OutletRepository
	userRepo   user.UserRepository
}

func NewOutletService(outletRepo outlet.OutletRepository, userRepo user.UserRepository) outlet.OutletService {
	return &OutletServiceImpl{outletRepo: outletRepo, userRepo: userRepo}
}

// Create implements outlet.OutletService.
func (s *OutletServiceImpl) Create(ctx context.Context, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error) {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return outlet.OutletResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return outlet.OutletResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := s.outletRepo.Create(ctx, outlet.Outlet{
		Nama:        req.Nama,
		Store:       req.Store,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RadiusMeter: req.RadiusMeter,
		IsActive:    active,
	})
	if err != nil {
		return outlet.OutletResponse{}, err
	}
	return outlet.ToResponse(created), nil
}

// List implements outlet.OutletService.
func (s *OutletServiceImpl) List(ctx context.Context) ([]outlet.OutletResponse, error) {
	outlets, err := s.outletRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]outlet.OutletResponse, 0, len(outlets))
	for _, o := range outlets {
		responses = append(responses, outlet.ToResponse(o))
	}
	return responses, nil
}

// Update implements outlet.OutletService.
func (s *OutletServiceImpl) Update(ctx context.Context, id string, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error) {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return outlet.OutletResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return outlet.OutletResponse{}, err
	}

	existing, err := s.outletRepo.GetByID(ctx, id)
	if err != nil {
		return outlet.OutletResponse{}, err
	}

	existing.Nama = req.Nama
	existing.Store = req.Store
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.RadiusMeter = req.RadiusMeter
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.outletRepo.Update(ctx, existing); err != nil {
		return outlet.OutletResponse{}, err
	}
	return outlet.ToResponse(existing), nil
}

// Delete implements outlet.OutletService.
func (s *OutletServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.requireMasterDataAccess(ctx); err != nil {
		return err
	}
	return s.outletRepo.Delete(ctx, id)
}

func (s *OutletServiceImpl) requireMasterDataAccess(ctx context.Context) error {
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
