package attendance

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/database"
	"github.com/absenin/absensi-backend-go/internal/pkg/storage"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

const catatanTidakAbsenMasuk = "Tidak absen masuk"

type AbsensiServiceImpl struct {
	tx          database.TxManager
	absensiRepo attendance.AbsensiRepository
	userRepo    user.UserRepository
	outletRepo  outlet.OutletRepository
	shiftRepo   shift.ShiftRepository
	cutiRepo    leave.CutiRepository
	resolver    schedule.Resolver
	storage     storage.FileStorage
	notifier    notification.Service
	logger      *slog.Logger

	// clock is swappable so classification anchors on an injected "now".
	clock func() time.Time
}

func NewAbsensiService(
	tx database.TxManager,
	absensiRepo attendance.AbsensiRepository,
	userRepo user.UserRepository,
	outletRepo outlet.OutletRepository,
	shiftRepo shift.ShiftRepository,
	cutiRepo leave.CutiRepository,
	resolver schedule.Resolver,
	fileStorage storage.FileStorage,
	notifier notification.Service,
	logger *slog.Logger,
) *AbsensiServiceImpl {
	return &AbsensiServiceImpl{
		tx:          tx,
		absensiRepo: absensiRepo,
		userRepo:    userRepo,
		outletRepo:  outletRepo,
		shiftRepo:   shiftRepo,
		cutiRepo:    cutiRepo,
		resolver:    resolver,
		storage:     fileStorage,
		notifier:    notifier,
		logger:      logger,
		clock:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *AbsensiServiceImpl) WithClock(clock func() time.Time) *AbsensiServiceImpl {
	s.clock = clock
	return s
}

// resolveTarget applies the on-behalf-of rule: only HR-tier callers may
// punch for someone else.
func resolveTarget(ctx context.Context, requested string) (string, error) {
	callerID := utils.GetUserID(ctx)
	if requested == "" || requested == callerID {
		return callerID, nil
	}
	role := utils.GetUserRole(ctx)
	if role != user.RoleHR && role != user.RoleAdmin {
		return "", attendance.ErrCheckInForbidden
	}
	return requested, nil
}

func (s *AbsensiServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AbsensiResponse, error) {
	var resp attendance.AbsensiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}
	targetID, err := resolveTarget(ctx, req.UserID)
	if err != nil {
		return resp, err
	}

	now := s.clock()
	today := startOfDay(now)

	o, err := s.outletRepo.GetByID(ctx, req.OutletID)
	if err != nil {
		return resp, err
	}
	if !o.IsActive {
		return resp, outlet.ErrOutletInactive
	}
	if err := checkWithinRadius(o, *req.Lokasi); err != nil {
		return resp, err
	}

	eff, err := s.resolver.ResolveWithDefault(ctx, targetID, today)
	if err != nil {
		return resp, err
	}
	if eff.IsOff() {
		return resp, attendance.ErrNoShiftResolvable
	}

	lateMinutes := 0
	if d := now.Sub(eff.Shift.MasukAt(today)); d > 0 {
		lateMinutes = int(d.Minutes())
	}
	statusHadir, requiresKoreksi := ClassifyLateness(lateMinutes, eff.Shift.ToleransiMenit)
	statusTerlambat := lateMinutes > eff.Shift.ToleransiMenit

	fotoURL, fotoPath, err := s.uploadPhoto(ctx, targetID, today, "masuk", req.Foto)
	if err != nil {
		return resp, err
	}

	var saved attendance.Absensi
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.absensiRepo.GetByUserAndDate(txCtx, targetID, today)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.JamMasuk != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			// A checkout-only day stays terminal; masuk remains null.
			return attendance.ErrAlreadyCheckedOut
		}

		jamMasuk := now
		row := attendance.Absensi{
			UserID:          targetID,
			Tanggal:         today,
			ShiftID:         &eff.Shift.ID,
			OutletID:        &o.ID,
			JamMasuk:        &jamMasuk,
			StatusHadir:     statusHadir,
			MenitTerlambat:  lateMinutes,
			StatusTerlambat: statusTerlambat,
			LatitudeMasuk:   &req.Lokasi.Lat,
			LongitudeMasuk:  &req.Lokasi.Lng,
			FotoMasukURL:    &fotoURL,
		}
		saved, err = s.absensiRepo.Create(txCtx, row)
		return err
	})
	if err != nil {
		s.discardPhoto(ctx, fotoPath)
		return resp, err
	}

	s.notifySuperior(ctx, targetID, notification.TypeCheckIn, "Absensi Masuk",
		fmt.Sprintf("Absen masuk pukul %s (%s)", now.Format("15:04"), statusHadir))

	saved.ShiftNama = &eff.Shift.Nama
	resp = attendance.ToResponse(saved)
	resp.RequiresKoreksi = requiresKoreksi
	return resp, nil
}

func (s *AbsensiServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AbsensiResponse, error) {
	var resp attendance.AbsensiResponse

	if err := req.Validate(); err != nil {
		return resp, err
	}
	targetID, err := resolveTarget(ctx, req.UserID)
	if err != nil {
		return resp, err
	}

	now := s.clock()
	today := startOfDay(now)

	o, err := s.outletRepo.GetByID(ctx, req.OutletID)
	if err != nil {
		return resp, err
	}
	if !o.IsActive {
		return resp, outlet.ErrOutletInactive
	}
	if err := checkWithinRadius(o, *req.Lokasi); err != nil {
		return resp, err
	}

	fotoURL, fotoPath, err := s.uploadPhoto(ctx, targetID, today, "pulang", req.Foto)
	if err != nil {
		return resp, err
	}

	var saved attendance.Absensi
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.absensiRepo.GetByUserAndDate(txCtx, targetID, today)
		if err != nil {
			return err
		}
		if existing == nil {
			saved, err = s.checkOutWithoutCheckIn(txCtx, targetID, today, now, o, req, fotoURL)
			return err
		}
		if existing.JamPulang != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if existing.OutletID != nil && *existing.OutletID != req.OutletID {
			return attendance.ErrOutletMismatch
		}

		row := *existing
		jamPulang := now
		row.JamPulang = &jamPulang
		row.LatitudePulang = &req.Lokasi.Lat
		row.LongitudePulang = &req.Lokasi.Lng
		row.FotoPulangURL = &fotoURL
		if req.Catatan != nil {
			row.Catatan = req.Catatan
		}

		if row.JamMasuk != nil {
			total := roundHours(now.Sub(*row.JamMasuk))
			row.TotalJamKerja = &total
		}
		s.applyEarlyLeave(txCtx, &row, today, now)

		if err := s.absensiRepo.Update(txCtx, row); err != nil {
			return err
		}
		saved = row
		return nil
	})
	if err != nil {
		s.discardPhoto(ctx, fotoPath)
		return resp, err
	}

	s.notifySuperior(ctx, targetID, notification.TypeCheckOut, "Absensi Pulang",
		fmt.Sprintf("Absen pulang pukul %s", now.Format("15:04")))

	return attendance.ToResponse(saved), nil
}

// checkOutWithoutCheckIn is the tolerant path: the day gets a row with a
// null jam_masuk, flagged for later koreksi.
func (s *AbsensiServiceImpl) checkOutWithoutCheckIn(
	ctx context.Context,
	userID string,
	today, now time.Time,
	o outlet.Outlet,
	req attendance.CheckOutRequest,
	fotoURL string,
) (attendance.Absensi, error) {
	catatan := catatanTidakAbsenMasuk
	if req.Catatan != nil && *req.Catatan != "" {
		catatan = catatanTidakAbsenMasuk + "; " + *req.Catatan
	}

	jamPulang := now
	row := attendance.Absensi{
		UserID:          userID,
		Tanggal:         today,
		OutletID:        &o.ID,
		JamPulang:       &jamPulang,
		StatusHadir:     attendance.StatusHadirMangkir,
		LatitudePulang:  &req.Lokasi.Lat,
		LongitudePulang: &req.Lokasi.Lng,
		FotoPulangURL:   &fotoURL,
		Catatan:         &catatan,
	}

	eff, err := s.resolver.ResolveWithDefault(ctx, userID, today)
	if err != nil {
		return attendance.Absensi{}, err
	}
	if !eff.IsOff() {
		row.ShiftID = &eff.Shift.ID
		if end := eff.Shift.PulangAt(today); now.Before(end) {
			row.MenitPulangCepat = int(end.Sub(now).Minutes())
			row.PulangCepat = true
		}
	}

	return s.absensiRepo.Upsert(ctx, row)
}

// applyEarlyLeave fills pulang_cepat against the snapshotted shift's end.
func (s *AbsensiServiceImpl) applyEarlyLeave(ctx context.Context, row *attendance.Absensi, today, now time.Time) {
	if row.ShiftID == nil {
		return
	}
	sh, err := s.shiftRepo.GetByID(ctx, *row.ShiftID)
	if err != nil {
		s.logger.Warn("early-leave check skipped, shift lookup failed", "shift_id", *row.ShiftID, "error", err)
		return
	}
	if end := sh.PulangAt(today); now.Before(end) {
		row.MenitPulangCepat = int(end.Sub(now).Minutes())
		row.PulangCepat = true
	}
}

func (s *AbsensiServiceImpl) TodayStatus(ctx context.Context) (attendance.DayStatusResponse, error) {
	userID := utils.GetUserID(ctx)
	now := s.clock()
	today := startOfDay(now)

	return s.classifyDay(ctx, userID, today, now)
}

func (s *AbsensiServiceImpl) History(ctx context.Context, month, year int) ([]attendance.DayStatusResponse, error) {
	userID := utils.GetUserID(ctx)
	now := s.clock()

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	rows, err := s.absensiRepo.GetByUserAndRange(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*attendance.Absensi, len(rows))
	for i := range rows {
		byDate[rows[i].Tanggal.Format("2006-01-02")] = &rows[i]
	}

	leaves, err := s.cutiRepo.GetApprovedOverlapping(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	days := make([]attendance.DayStatusResponse, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		eff, err := s.resolver.EffectiveShift(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		rec := byDate[d.Format("2006-01-02")]
		days = append(days, s.buildDayStatus(d, now, eff, rec, coveredByLeave(leaves, d)))
	}
	return days, nil
}

func (s *AbsensiServiceImpl) classifyDay(ctx context.Context, userID string, date, now time.Time) (attendance.DayStatusResponse, error) {
	eff, err := s.resolver.EffectiveShift(ctx, userID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	rec, err := s.absensiRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	cuti, err := s.cutiRepo.GetApprovedCovering(ctx, userID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	return s.buildDayStatus(date, now, eff, rec, cuti != nil), nil
}

func (s *AbsensiServiceImpl) buildDayStatus(
	date, now time.Time,
	eff schedule.EffectiveShift,
	rec *attendance.Absensi,
	onLeave bool,
) attendance.DayStatusResponse {
	cls := Classify(DayInput{
		Date:      date,
		Now:       now,
		Effective: eff,
		Record:    rec,
		OnLeave:   onLeave,
	})

	resp := attendance.DayStatusResponse{
		Tanggal:           date.Format("2006-01-02"),
		Status:            cls.Status,
		IsShiftChanged:    eff.IsChanged,
		PendingSwapID:     eff.PendingSwapID,
		CanRequestKoreksi: cls.CanRequestKoreksi,
		RequiresApproval:  cls.RequiresApproval,
		IsScheduledOff:    cls.IsScheduledOff,
	}
	if eff.Shift != nil {
		resp.ShiftNama = &eff.Shift.Nama
		resp.JamMasukShift = &eff.Shift.JamMasuk
		resp.JamPulangShift = &eff.Shift.JamPulang
	}
	if rec != nil {
		r := attendance.ToResponse(*rec)
		resp.Record = &r
	}
	return resp
}

// notifySuperior pings the user's direct superior after commit. A failure
// here never surfaces to the caller.
func (s *AbsensiServiceImpl) notifySuperior(ctx context.Context, userID string, typ notification.NotificationType, title, message string) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("notification skipped, user lookup failed", "user_id", userID, "error", err)
		return
	}
	if u.AtasanID == nil {
		return
	}
	s.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: *u.AtasanID,
		SenderID:    &u.ID,
		Type:        typ,
		Title:       title,
		Message:     fmt.Sprintf("%s: %s", u.Nama, message),
	})
}

func (s *AbsensiServiceImpl) uploadPhoto(ctx context.Context, userID string, day time.Time, kind, payload string) (url, path string, err error) {
	data, err := decodeBase64Photo(payload)
	if err != nil {
		return "", "", attendance.ErrMissingPhoto
	}
	path = fmt.Sprintf("absensi/%s/%s-%s.jpg", userID, day.Format("2006-01-02"), kind)
	url, err = s.storage.Upload(ctx, bytes.NewReader(data), path, "image/jpeg")
	if err != nil {
		return "", "", err
	}
	return url, path, nil
}

// discardPhoto removes a photo stored for a punch that did not commit.
func (s *AbsensiServiceImpl) discardPhoto(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		s.logger.Warn("failed to remove orphaned photo", "path", path, "error", err)
	}
}

// decodeBase64Photo accepts a raw base64 payload or a data URL.
func decodeBase64Photo(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty photo payload")
	}
	return data, nil
}

func checkWithinRadius(o outlet.Outlet, loc attendance.Lokasi) error {
	distance := utils.CalculatePlanarDistance(loc.Lat, loc.Lng, o.Latitude, o.Longitude)
	if distance > float64(o.RadiusMeter) {
		return attendance.ErrOutOfRange
	}
	return nil
}

func roundHours(d time.Duration) float64 {
	return utils.RoundTo2(d.Hours())
}

func coveredByLeave(leaves []leave.Cuti, date time.Time) bool {
	for i := range leaves {
		if !date.Before(startOfDay(leaves[i].TanggalMulai)) && !date.After(startOfDay(leaves[i].TanggalAkhir)) {
			return true
		}
	}
	return false
}
