package shiftswap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
)

type SwapServiceImpl struct {
	tx          database.TxManager
	swapRepo    shiftswap.SwapRepository
	jadwalRepo  schedule.JadwalRepository
	absensiRepo attendance.AbsensiRepository
	shiftRepo   shift.ShiftRepository
	userRepo    user.UserRepository
	hierarchy   *hierarchy.Resolver
	notifier    notification.Service
	logger      *slog.Logger
	clock       func() time.Time
}

func NewSwapService(
	tx database.TxManager,
	swapRepo shiftswap.SwapRepository,
	jadwalRepo schedule.JadwalRepository,
	absensiRepo attendance.AbsensiRepository,
	shiftRepo shift.ShiftRepository,
	userRepo user.UserRepository,
	hierarchyResolver *hierarchy.Resolver,
	notifier notification.Service,
	logger *slog.Logger,
) *SwapServiceImpl {
	return &SwapServiceImpl{
		tx:          tx,
		swapRepo:    swapRepo,
		jadwalRepo:  jadwalRepo,
		absensiRepo: absensiRepo,
		shiftRepo:   shiftRepo,
		userRepo:    userRepo,
		hierarchy:   hierarchyResolver,
		notifier:    notifier,
		logger:      logger,
		clock:       time.Now,
	}
}

func (s *SwapServiceImpl) WithClock(clock func() time.Time) *SwapServiceImpl {
	s.clock = clock
	return s
}

func (s *SwapServiceImpl) CreateRequest(ctx context.Context, req shiftswap.CreateSwapRequest) (shiftswap.SwapResponse, error) {
	var resp shiftswap.SwapResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}

	userID := utils.GetUserID(ctx)
	tanggal, _ := time.Parse("2006-01-02", req.Tanggal)

	if req.ShiftTujuanID != nil {
		if _, err := s.shiftRepo.GetByID(ctx, *req.ShiftTujuanID); err != nil {
			return resp, err
		}
	}

	pending, err := s.swapRepo.GetPendingByUserAndDate(ctx, userID, tanggal)
	if err != nil {
		return resp, err
	}
	if pending != nil {
		return resp, shiftswap.ErrDuplicatePending
	}

	// Snapshot the currently scheduled shift as the origin.
	var shiftAsalID *string
	if row, err := s.jadwalRepo.GetByUserAndDate(ctx, userID, tanggal); err != nil {
		return resp, err
	} else if row != nil {
		shiftAsalID = row.ShiftID
	}

	saved, err := s.swapRepo.Create(ctx, shiftswap.ShiftChangeRequest{
		UserID:        userID,
		Tanggal:       tanggal,
		ShiftAsalID:   shiftAsalID,
		ShiftTujuanID: req.ShiftTujuanID,
		Alasan:        req.Alasan,
		Status:        shiftswap.StatusPending,
	})
	if err != nil {
		return resp, err
	}

	if u, uerr := s.userRepo.GetByID(ctx, userID); uerr == nil && u.AtasanID != nil {
		s.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: *u.AtasanID,
			SenderID:    &u.ID,
			Type:        notification.TypeSwapBaru,
			Title:       "Pengajuan Tukar Shift",
			Message:     fmt.Sprintf("%s mengajukan perubahan shift untuk %s", u.Nama, req.Tanggal),
		})
	}

	return shiftswap.ToResponse(saved), nil
}

func (s *SwapServiceImpl) Respond(ctx context.Context, id string, req shiftswap.RespondSwapRequest) (shiftswap.SwapResponse, error) {
	var resp shiftswap.SwapResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}

	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return resp, err
	}

	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if swap.Status != shiftswap.StatusPending {
		return resp, shiftswap.ErrSwapAlreadyProcessed
	}

	allowed, err := s.hierarchy.CanActOn(ctx, approver, swap.UserID)
	if err != nil {
		return resp, err
	}
	if !allowed {
		return resp, user.ErrNotSubordinate
	}

	now := s.clock()
	swap.Status = shiftswap.Status(req.Status)
	swap.ApproverID = &approver.ID
	swap.Keterangan = req.Keterangan
	swap.DecidedAt = &now

	if swap.Status == shiftswap.StatusRejected {
		if err := s.swapRepo.Update(ctx, swap); err != nil {
			return resp, err
		}
		s.notifyDecision(ctx, swap)
		return shiftswap.ToResponse(swap), nil
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applyOverride(txCtx, swap); err != nil {
			return err
		}
		return s.swapRepo.Update(txCtx, swap)
	})
	if err != nil {
		return resp, err
	}

	s.notifyDecision(ctx, swap)

	return shiftswap.ToResponse(swap), nil
}

// applyOverride rewrites the published schedule for the date and re-points
// an existing attendance row at the new shift.
func (s *SwapServiceImpl) applyOverride(ctx context.Context, swap shiftswap.ShiftChangeRequest) error {
	existing, err := s.jadwalRepo.GetByUserAndDate(ctx, swap.UserID, swap.Tanggal)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.jadwalRepo.UpdateShift(ctx, swap.UserID, swap.Tanggal, swap.ShiftTujuanID); err != nil {
			return err
		}
	} else {
		if _, err := s.jadwalRepo.Upsert(ctx, schedule.Jadwal{
			UserID:  swap.UserID,
			Tanggal: swap.Tanggal,
			ShiftID: swap.ShiftTujuanID,
		}); err != nil {
			return err
		}
	}

	row, err := s.absensiRepo.GetByUserAndDate(ctx, swap.UserID, swap.Tanggal)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	row.ShiftID = swap.ShiftTujuanID
	return s.absensiRepo.Update(ctx, *row)
}

func (s *SwapServiceImpl) ListMine(ctx context.Context) ([]shiftswap.SwapResponse, error) {
	rows, err := s.swapRepo.ListByUser(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *SwapServiceImpl) ListPendingForApprover(ctx context.Context) ([]shiftswap.SwapResponse, error) {
	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	var rows []shiftswap.ShiftChangeRequest
	switch {
	case approver.IsHRTier():
		rows, err = s.swapRepo.ListPendingAll(ctx)
	case approver.IsHRCabang():
		if approver.PenempatanStore == nil {
			return nil, user.ErrNoStorePlacement
		}
		storeUsers, uerr := s.userRepo.GetByStore(ctx, *approver.PenempatanStore)
		if uerr != nil {
			return nil, uerr
		}
		ids := make([]string, 0, len(storeUsers))
		for _, u := range storeUsers {
			ids = append(ids, u.ID)
		}
		rows, err = s.swapRepo.ListPendingByUsers(ctx, ids)
	case approver.CanApprove():
		subs, serr := s.hierarchy.SubordinatesOf(ctx, approver.ID)
		if serr != nil {
			return nil, serr
		}
		rows, err = s.swapRepo.ListPendingByUsers(ctx, subs)
	default:
		return nil, user.ErrApprovalNotAllowed
	}
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *SwapServiceImpl) notifyDecision(ctx context.Context, swap shiftswap.ShiftChangeRequest) {
	u, err := s.userRepo.GetByID(ctx, swap.UserID)
	if err != nil {
		s.logger.Warn("swap decision notification skipped", "user_id", swap.UserID, "error", err)
		return
	}

	word := "tolak"
	if swap.Status == shiftswap.StatusApproved {
		word = "setujui"
	}
	s.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: u.ID,
		SenderID:    swap.ApproverID,
		Type:        notification.TypeSwapHasil,
		Title:       "Hasil Pengajuan Tukar Shift",
		Message:     fmt.Sprintf("Pengajuan tukar shift %s Anda telah di-%s", swap.Tanggal.Format("2006-01-02"), word),
		Email:       u.Email,
		Data:        notification.DecisionData(u.Nama, "tukar shift", word, swap.Keterangan),
	})
}

func toResponses(rows []shiftswap.ShiftChangeRequest) []shiftswap.SwapResponse {
	out := make([]shiftswap.SwapResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, shiftswap.ToResponse(row))
	}
	return out
}
