package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

const catatanAutoClose = "Tidak absen pulang; ditutup otomatis"

// AttendanceJobs holds the nightly attendance maintenance jobs: closing
// rows whose check-out never came and recording mangkir for users who were
// scheduled yesterday but never punched in.
type AttendanceJobs struct {
	absensiRepo attendance.AbsensiRepository
	userRepo    user.UserRepository
	cutiRepo    leave.CutiRepository
	shiftRepo   shift.ShiftRepository
	resolver    schedule.Resolver
	notifier    notification.Service
	logger      *slog.Logger
	clock       func() time.Time
}

func NewAttendanceJobs(
	absensiRepo attendance.AbsensiRepository,
	userRepo user.UserRepository,
	cutiRepo leave.CutiRepository,
	shiftRepo shift.ShiftRepository,
	resolver schedule.Resolver,
	notifier notification.Service,
	logger *slog.Logger,
) *AttendanceJobs {
	return &AttendanceJobs{
		absensiRepo: absensiRepo,
		userRepo:    userRepo,
		cutiRepo:    cutiRepo,
		shiftRepo:   shiftRepo,
		resolver:    resolver,
		notifier:    notifier,
		logger:      logger,
		clock:       time.Now,
	}
}

// WithClock overrides the time source.
func (j *AttendanceJobs) WithClock(clock func() time.Time) *AttendanceJobs {
	j.clock = clock
	return j
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_attendances", 1*time.Hour, j.CloseStaleAttendances)
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// CloseStaleAttendances punches out rows that still have no check-out by
// the start of the current day, using the scheduled shift end as the
// check-out time. Runs hourly but only acts during the 00:00 hour.
func (j *AttendanceJobs) CloseStaleAttendances(ctx context.Context) error {
	now := j.clock()
	if now.Hour() != 0 {
		return nil
	}

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rows, err := j.absensiRepo.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list open attendances: %w", err)
	}

	closed := 0
	for _, row := range rows {
		sh, err := j.rowShift(ctx, row)
		if err != nil {
			j.logger.Warn("stale row has no resolvable shift, left open",
				"absensi_id", row.ID, "user_id", row.UserID, "error", err)
			continue
		}

		pulang := sh.PulangAt(row.Tanggal)
		row.JamPulang = &pulang
		if row.JamMasuk != nil {
			hours := utils.RoundTo2(pulang.Sub(*row.JamMasuk).Hours())
			row.TotalJamKerja = &hours
		}
		catatan := catatanAutoClose
		if row.Catatan != nil && *row.Catatan != "" {
			catatan = *row.Catatan + "; " + catatanAutoClose
		}
		row.Catatan = &catatan

		if err := j.absensiRepo.Update(ctx, row); err != nil {
			j.logger.Error("auto-close update failed", "absensi_id", row.ID, "error", err)
			continue
		}
		closed++

		j.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: row.UserID,
			Type:        notification.TypeAutoClose,
			Title:       "Absensi Ditutup Otomatis",
			Message:     fmt.Sprintf("Absensi %s Anda ditutup otomatis karena tidak ada absensi pulang. Ajukan koreksi bila jam pulang tidak sesuai.", row.Tanggal.Format("2006-01-02")),
			Data:        map[string]interface{}{"tanggal": row.Tanggal.Format("2006-01-02")},
		})
	}

	j.logger.Info("stale attendances closed", "count", closed, "open", len(rows))
	return nil
}

// MarkAbsentUsers writes a mangkir row for every active user who had a
// working shift yesterday, no approved leave, and no attendance row at all.
// Runs hourly but only acts during the 00:00 hour.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	now := j.clock()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	marked := 0
	for _, u := range users {
		existing, err := j.absensiRepo.GetByUserAndDate(ctx, u.ID, yesterday)
		if err != nil {
			j.logger.Error("mark-absent lookup failed", "user_id", u.ID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		eff, err := j.resolver.EffectiveShift(ctx, u.ID, yesterday)
		if err != nil || eff.IsOff() {
			continue
		}

		cuti, err := j.cutiRepo.GetApprovedCovering(ctx, u.ID, yesterday)
		if err != nil {
			j.logger.Error("mark-absent leave lookup failed", "user_id", u.ID, "error", err)
			continue
		}
		if cuti != nil {
			continue
		}

		row := attendance.Absensi{
			ID:          uuid.New().String(),
			UserID:      u.ID,
			Tanggal:     yesterday,
			ShiftID:     &eff.Shift.ID,
			StatusHadir: attendance.StatusHadirMangkir,
		}
		if _, err := j.absensiRepo.Upsert(ctx, row); err != nil {
			j.logger.Error("mark-absent upsert failed", "user_id", u.ID, "error", err)
			continue
		}
		marked++

		j.notifyMangkir(u, yesterday)
	}

	j.logger.Info("absent users marked", "count", marked, "tanggal", yesterday.Format("2006-01-02"))
	return nil
}

func (j *AttendanceJobs) notifyMangkir(u user.User, day time.Time) {
	tanggal := day.Format("2006-01-02")
	j.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: u.ID,
		Type:        notification.TypeMangkir,
		Title:       "Tercatat Mangkir",
		Message:     fmt.Sprintf("Anda tercatat mangkir pada %s. Ajukan koreksi bila ini tidak sesuai.", tanggal),
		Data:        map[string]interface{}{"tanggal": tanggal},
	})
	if u.AtasanID != nil {
		j.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: *u.AtasanID,
			SenderID:    &u.ID,
			Type:        notification.TypeMangkir,
			Title:       "Bawahan Tercatat Mangkir",
			Message:     fmt.Sprintf("%s tercatat mangkir pada %s", u.Nama, tanggal),
			Data:        map[string]interface{}{"tanggal": tanggal, "user_id": u.ID},
		})
	}
}

// rowShift recovers the shift an open row was punched against, preferring
// the snapshot taken at check-in time.
func (j *AttendanceJobs) rowShift(ctx context.Context, row attendance.Absensi) (shift.Shift, error) {
	if row.ShiftID != nil {
		return j.shiftRepo.GetByID(ctx, *row.ShiftID)
	}
	eff, err := j.resolver.EffectiveShift(ctx, row.UserID, row.Tanggal)
	if err != nil {
		return shift.Shift{}, err
	}
	if eff.IsOff() {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return *eff.Shift, nil
}
