package user

import (
	"context"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
)

type UserServiceImpl struct {
	userRepo  user.UserRepository
	hierarchy *hierarchy.Resolver
}

func NewUserService(userRepo user.UserRepository, hierarchyResolver *hierarchy.Resolver) user.UserService {
	return &UserServiceImpl{userRepo: userRepo, hierarchy: hierarchyResolver}
}

// Subordinates implements user.UserService.
func (s *UserServiceImpl) Subordinates(ctx context.Context, userID string) ([]user.SubordinateResponse, error) {
	caller, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var team []user.User
	switch {
	case caller.IsHRTier():
		team, err = s.userRepo.ListActive(ctx)
	case caller.IsHRCabang():
		if caller.PenempatanStore == nil {
			return nil, user.ErrNoStorePlacement
		}
		team, err = s.userRepo.GetByStore(ctx, *caller.PenempatanStore)
	default:
		var ids []string
		ids, err = s.hierarchy.SubordinatesOf(ctx, userID)
		if err != nil {
			return nil, err
		}
		team, err = s.userRepo.GetByIDs(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]user.SubordinateResponse, 0, len(team))
	for _, u := range team {
		if u.ID == userID {
			continue
		}
		responses = append(responses, user.SubordinateResponse{
			ID:              u.ID,
			Nama:            u.Nama,
			Role:            u.Role,
			PenempatanStore: u.PenempatanStore,
		})
	}
	return responses, nil
}
