package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
)

// resolver implements schedule.Resolver. Precedence: approved shift-change
// override first, then the published Jadwal row, otherwise off.
type resolver struct {
	jadwalRepo schedule.JadwalRepository
	swapRepo   shiftswap.SwapRepository
	shiftRepo  shift.ShiftRepository
	userRepo   user.UserRepository
}

func NewResolver(
	jadwalRepo schedule.JadwalRepository,
	swapRepo shiftswap.SwapRepository,
	shiftRepo shift.ShiftRepository,
	userRepo user.UserRepository,
) schedule.Resolver {
	return &resolver{
		jadwalRepo: jadwalRepo,
		swapRepo:   swapRepo,
		shiftRepo:  shiftRepo,
		userRepo:   userRepo,
	}
}

func (r *resolver) EffectiveShift(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	var result schedule.EffectiveShift

	swap, err := r.swapRepo.GetApprovedByUserAndDate(ctx, userID, date)
	if err != nil {
		return result, err
	}
	if swap != nil {
		result.IsChanged = true
		if swap.ShiftTujuanID == nil {
			// Approved change into a day off.
			result.State = schedule.StateExplicitOff
			return result, nil
		}
		s, err := r.shiftRepo.GetByID(ctx, *swap.ShiftTujuanID)
		if err != nil {
			return result, err
		}
		result.Shift = &s
		result.State = schedule.StateScheduled
		return result, nil
	}

	pending, err := r.swapRepo.GetPendingByUserAndDate(ctx, userID, date)
	if err != nil {
		return result, err
	}
	if pending != nil {
		id := pending.ID
		result.PendingSwapID = &id
	}

	jadwal, err := r.jadwalRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return result, err
	}
	if jadwal == nil {
		result.State = schedule.StateNone
		return result, nil
	}
	if jadwal.ShiftID == nil {
		result.State = schedule.StateExplicitOff
		return result, nil
	}

	if jadwal.Shift != nil {
		result.Shift = jadwal.Shift
	} else {
		s, err := r.shiftRepo.GetByID(ctx, *jadwal.ShiftID)
		if err != nil {
			return result, err
		}
		result.Shift = &s
	}
	result.State = schedule.StateScheduled
	return result, nil
}

func (r *resolver) ResolveWithDefault(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	result, err := r.EffectiveShift(ctx, userID, date)
	if err != nil {
		return result, err
	}
	// The default shift only fills the gap when nothing was published at
	// all. An explicit day off stays off.
	if result.State != schedule.StateNone {
		return result, nil
	}

	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return result, err
	}
	if u.ShiftDefaultID == nil {
		return result, nil
	}
	s, err := r.shiftRepo.GetByID(ctx, *u.ShiftDefaultID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return result, nil
		}
		return result, err
	}
	result.Shift = &s
	result.State = schedule.StateScheduled
	return result, nil
}
