package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
)

type CutiServiceImpl struct {
	tx          database.TxManager
	cutiRepo    leave.CutiRepository
	absensiRepo attendance.AbsensiRepository
	userRepo    user.UserRepository
	resolver    schedule.Resolver
	hierarchy   *hierarchy.Resolver
	notifier    notification.Service
	logger      *slog.Logger
	clock       func() time.Time
}

func NewCutiService(
	tx database.TxManager,
	cutiRepo leave.CutiRepository,
	absensiRepo attendance.AbsensiRepository,
	userRepo user.UserRepository,
	resolver schedule.Resolver,
	hierarchyResolver *hierarchy.Resolver,
	notifier notification.Service,
	logger *slog.Logger,
) *CutiServiceImpl {
	return &CutiServiceImpl{
		tx:          tx,
		cutiRepo:    cutiRepo,
		absensiRepo: absensiRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		hierarchy:   hierarchyResolver,
		notifier:    notifier,
		logger:      logger,
		clock:       time.Now,
	}
}

func (s *CutiServiceImpl) WithClock(clock func() time.Time) *CutiServiceImpl {
	s.clock = clock
	return s
}

func (s *CutiServiceImpl) Apply(ctx context.Context, req leave.ApplyCutiRequest) (leave.CutiResponse, error) {
	var resp leave.CutiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}

	userID := utils.GetUserID(ctx)
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return resp, err
	}

	mulai, _ := time.Parse("2006-01-02", req.TanggalMulai)
	akhir, _ := time.Parse("2006-01-02", req.TanggalAkhir)
	days := int(akhir.Sub(mulai).Hours()/24) + 1

	c := leave.Cuti{
		UserID:       userID,
		Jenis:        leave.Jenis(req.Jenis),
		TanggalMulai: mulai,
		TanggalAkhir: akhir,
		JumlahHari:   days,
		Alasan:       req.Alasan,
		BuktiURL:     req.BuktiURL,
		Status:       leave.StatusPending,
	}

	if c.CountsAgainstQuota() && u.SisaCuti < days {
		return resp, leave.ErrInsufficientBalance
	}

	saved, err := s.cutiRepo.Create(ctx, c)
	if err != nil {
		return resp, err
	}

	if u.AtasanID != nil {
		s.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: *u.AtasanID,
			SenderID:    &u.ID,
			Type:        notification.TypeCutiBaru,
			Title:       "Pengajuan " + string(saved.Jenis),
			Message:     fmt.Sprintf("%s mengajukan %s %s s/d %s", u.Nama, saved.Jenis, req.TanggalMulai, req.TanggalAkhir),
		})
	}

	return leave.ToResponse(saved), nil
}

func (s *CutiServiceImpl) Validate(ctx context.Context, id string, req leave.ValidateCutiRequest) (leave.CutiResponse, error) {
	var resp leave.CutiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}

	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return resp, err
	}

	c, err := s.cutiRepo.GetByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if c.Status != leave.StatusPending {
		return resp, leave.ErrCutiAlreadyProcessed
	}

	allowed, err := s.hierarchy.CanActOn(ctx, approver, c.UserID)
	if err != nil {
		return resp, err
	}
	if !allowed {
		return resp, user.ErrNotSubordinate
	}

	now := s.clock()
	c.ApproverID = &approver.ID
	c.CatatanApprover = req.Catatan
	c.DecidedAt = &now

	if req.Action == "reject" {
		c.Status = leave.StatusRejected
		if err := s.cutiRepo.Update(ctx, c); err != nil {
			return resp, err
		}
		s.notifyDecision(ctx, c)
		return leave.ToResponse(c), nil
	}

	c.Status = leave.StatusApproved
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.expandToAbsensi(txCtx, c); err != nil {
			return err
		}
		if c.CountsAgainstQuota() {
			if err := s.userRepo.AdjustSisaCuti(txCtx, c.UserID, -c.JumlahHari); err != nil {
				return err
			}
		}
		return s.cutiRepo.Update(txCtx, c)
	})
	if err != nil {
		return resp, err
	}

	s.notifyDecision(ctx, c)

	return leave.ToResponse(c), nil
}

// expandToAbsensi upserts one locked row per calendar day in the range.
func (s *CutiServiceImpl) expandToAbsensi(ctx context.Context, c leave.Cuti) error {
	status := c.StatusHadirFor()

	for _, day := range c.Days() {
		existing, err := s.absensiRepo.GetByUserAndDate(ctx, c.UserID, day)
		if err != nil {
			return err
		}

		var row attendance.Absensi
		if existing != nil {
			row = *existing
		} else {
			row = attendance.Absensi{UserID: c.UserID, Tanggal: day}
			eff, err := s.resolver.EffectiveShift(ctx, c.UserID, day)
			if err != nil {
				return err
			}
			if !eff.IsOff() {
				row.ShiftID = &eff.Shift.ID
			}
		}

		row.StatusHadir = status
		row.IsLocked = true
		row.MenitTerlambat = 0
		row.StatusTerlambat = false

		if _, err := s.absensiRepo.Upsert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *CutiServiceImpl) ListMine(ctx context.Context) ([]leave.CutiResponse, error) {
	rows, err := s.cutiRepo.ListByUser(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *CutiServiceImpl) ListPendingForApprover(ctx context.Context) ([]leave.CutiResponse, error) {
	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	var rows []leave.Cuti
	switch {
	case approver.IsHRTier():
		rows, err = s.cutiRepo.ListPendingAll(ctx)
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
		rows, err = s.cutiRepo.ListPendingByUsers(ctx, ids)
	case approver.CanApprove():
		subs, serr := s.hierarchy.SubordinatesOf(ctx, approver.ID)
		if serr != nil {
			return nil, serr
		}
		rows, err = s.cutiRepo.ListPendingByUsers(ctx, subs)
	default:
		return nil, user.ErrApprovalNotAllowed
	}
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *CutiServiceImpl) notifyDecision(ctx context.Context, c leave.Cuti) {
	u, err := s.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		s.logger.Warn("cuti decision notification skipped", "user_id", c.UserID, "error", err)
		return
	}

	word := "tolak"
	if c.Status == leave.StatusApproved {
		word = "setujui"
	}
	s.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: u.ID,
		SenderID:    c.ApproverID,
		Type:        notification.TypeCutiHasil,
		Title:       "Hasil Pengajuan " + string(c.Jenis),
		Message:     fmt.Sprintf("Pengajuan %s Anda (%s s/d %s) telah di-%s", c.Jenis, c.TanggalMulai.Format("2006-01-02"), c.TanggalAkhir.Format("2006-01-02"), word),
		Email:       u.Email,
		Data:        notification.DecisionData(u.Nama, string(c.Jenis), word, c.CatatanApprover),
	})
}

func toResponses(rows []leave.Cuti) []leave.CutiResponse {
	out := make([]leave.CutiResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, leave.ToResponse(row))
	}
	return out
}
