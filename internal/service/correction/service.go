package correction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/correction"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
)

type KoreksiServiceImpl struct {
	tx          database.TxManager
	koreksiRepo correction.KoreksiRepository
	absensiRepo attendance.AbsensiRepository
	userRepo    user.UserRepository
	resolver    schedule.Resolver
	hierarchy   *hierarchy.Resolver
	notifier    notification.Service
	logger      *slog.Logger
	clock       func() time.Time
}

func NewKoreksiService(
	tx database.TxManager,
	koreksiRepo correction.KoreksiRepository,
	absensiRepo attendance.AbsensiRepository,
	userRepo user.UserRepository,
	resolver schedule.Resolver,
	hierarchyResolver *hierarchy.Resolver,
	notifier notification.Service,
	logger *slog.Logger,
) *KoreksiServiceImpl {
	return &KoreksiServiceImpl{
		tx:          tx,
		koreksiRepo: koreksiRepo,
		absensiRepo: absensiRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		hierarchy:   hierarchyResolver,
		notifier:    notifier,
		logger:      logger,
		clock:       time.Now,
	}
}

func (s *KoreksiServiceImpl) WithClock(clock func() time.Time) *KoreksiServiceImpl {
	s.clock = clock
	return s
}

func (s *KoreksiServiceImpl) CreateRequest(ctx context.Context, req correction.CreateKoreksiRequest) (correction.KoreksiResponse, error) {
	var resp correction.KoreksiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}
	userID := utils.GetUserID(ctx)
	tanggal, _ := time.Parse("2006-01-02", req.Tanggal)

	saved, err := s.koreksiRepo.Create(ctx, correction.KoreksiAbsensi{
		UserID:        userID,
		Tanggal:       tanggal,
		JamMasukBaru:  req.JamMasukBaru,
		JamPulangBaru: req.JamPulangBaru,
		Alasan:        req.Alasan,
		Status:        correction.StatusPending,
	})
	if err != nil {
		return resp, err
	}

	s.notifyAtasan(ctx, userID, saved)

	return correction.ToResponse(saved), nil
}

func (s *KoreksiServiceImpl) ValidateRequest(ctx context.Context, id string, req correction.ValidateKoreksiRequest) (correction.KoreksiResponse, error) {
	var resp correction.KoreksiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}

	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return resp, err
	}

	k, err := s.koreksiRepo.GetByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if k.Status != correction.StatusPending {
		return resp, correction.ErrKoreksiAlreadyProcessed
	}

	allowed, err := s.hierarchy.CanActOn(ctx, approver, k.UserID)
	if err != nil {
		return resp, err
	}
	if !allowed {
		return resp, user.ErrNotSubordinate
	}

	now := s.clock()
	k.ApproverID = &approver.ID
	k.CatatanApprover = req.Catatan
	k.DecidedAt = &now

	if req.Action == "reject" {
		k.Status = correction.StatusRejected
		if err := s.koreksiRepo.Update(ctx, k); err != nil {
			return resp, err
		}
		s.notifyDecision(ctx, k)
		return correction.ToResponse(k), nil
	}

	k.Status = correction.StatusApproved
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applyCorrection(txCtx, k); err != nil {
			return err
		}
		return s.koreksiRepo.Update(txCtx, k)
	})
	if err != nil {
		return resp, err
	}

	s.notifyDecision(ctx, k)

	return correction.ToResponse(k), nil
}

// applyCorrection upserts the attendance row for the corrected date and
// recomputes lateness and worked hours against the resolved shift.
func (s *KoreksiServiceImpl) applyCorrection(ctx context.Context, k correction.KoreksiAbsensi) error {
	eff, err := s.resolver.ResolveWithDefault(ctx, k.UserID, k.Tanggal)
	if err != nil {
		return err
	}

	existing, err := s.absensiRepo.GetByUserAndDate(ctx, k.UserID, k.Tanggal)
	if err != nil {
		return err
	}

	var row attendance.Absensi
	if existing != nil {
		row = *existing
	} else {
		row = attendance.Absensi{UserID: k.UserID, Tanggal: k.Tanggal}
		if !eff.IsOff() {
			row.ShiftID = &eff.Shift.ID
		}
	}

	if k.JamMasukBaru != nil {
		t := atTimeOfDay(k.Tanggal, *k.JamMasukBaru)
		row.JamMasuk = &t
	}
	if k.JamPulangBaru != nil {
		t := atTimeOfDay(k.Tanggal, *k.JamPulangBaru)
		if row.JamMasuk != nil && t.Before(*row.JamMasuk) {
			t = t.Add(24 * time.Hour)
		}
		row.JamPulang = &t
	}

	if row.JamMasuk != nil && row.JamPulang != nil {
		total := utils.RoundTo2(row.JamPulang.Sub(*row.JamMasuk).Hours())
		row.TotalJamKerja = &total
	}

	row.MenitTerlambat = 0
	row.StatusTerlambat = false
	if !eff.IsOff() && row.JamMasuk != nil {
		if d := row.JamMasuk.Sub(eff.Shift.MasukAt(k.Tanggal)); d > 0 {
			row.MenitTerlambat = int(d.Minutes())
			row.StatusTerlambat = row.MenitTerlambat > eff.Shift.ToleransiMenit
		}
	}

	row.StatusHadir = attendance.StatusHadirHadir
	row.IsLocked = false

	_, err = s.absensiRepo.Upsert(ctx, row)
	return err
}

func (s *KoreksiServiceImpl) ListMine(ctx context.Context) ([]correction.KoreksiResponse, error) {
	rows, err := s.koreksiRepo.ListByUser(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *KoreksiServiceImpl) ListPendingForApprover(ctx context.Context) ([]correction.KoreksiResponse, error) {
	approver, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	var rows []correction.KoreksiAbsensi
	switch {
	case approver.IsHRTier():
		rows, err = s.koreksiRepo.ListPendingAll(ctx)
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
		rows, err = s.koreksiRepo.ListPendingByUsers(ctx, ids)
	case approver.CanApprove():
		subs, serr := s.hierarchy.SubordinatesOf(ctx, approver.ID)
		if serr != nil {
			return nil, serr
		}
		rows, err = s.koreksiRepo.ListPendingByUsers(ctx, subs)
	default:
		return nil, user.ErrApprovalNotAllowed
	}
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *KoreksiServiceImpl) notifyAtasan(ctx context.Context, userID string, k correction.KoreksiAbsensi) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u.AtasanID == nil {
		if err != nil {
			s.logger.Warn("koreksi notification skipped", "user_id", userID, "error", err)
		}
		return
	}
	s.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: *u.AtasanID,
		SenderID:    &u.ID,
		Type:        notification.TypeKoreksiBaru,
		Title:       "Pengajuan Koreksi Absensi",
		Message:     fmt.Sprintf("%s mengajukan koreksi absensi untuk %s", u.Nama, k.Tanggal.Format("2006-01-02")),
	})
}

func (s *KoreksiServiceImpl) notifyDecision(ctx context.Context, k correction.KoreksiAbsensi) {
	u, err := s.userRepo.GetByID(ctx, k.UserID)
	if err != nil {
		s.logger.Warn("koreksi decision notification skipped", "user_id", k.UserID, "error", err)
		return
	}
	s.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: u.ID,
		SenderID:    k.ApproverID,
		Type:        notification.TypeKoreksiHasil,
		Title:       "Hasil Koreksi Absensi",
		Message:     fmt.Sprintf("Koreksi absensi %s Anda telah di-%s", k.Tanggal.Format("2006-01-02"), statusWord(k.Status)),
		Email:       u.Email,
		Data:        notification.DecisionData(u.Nama, "koreksi absensi", statusWord(k.Status), k.CatatanApprover),
	})
}

func statusWord(st correction.Status) string {
	if st == correction.StatusApproved {
		return "setujui"
	}
	return "tolak"
}

func toResponses(rows []correction.KoreksiAbsensi) []correction.KoreksiResponse {
	out := make([]correction.KoreksiResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, correction.ToResponse(row))
	}
	return out
}

func atTimeOfDay(day time.Time, hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
