package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var officeShift = shift.Shift{
	ID:             "sh-1",
	Nama:           "Office",
	JamMasuk:       "08:00",
	JamPulang:      "17:00",
	ToleransiMenit: 15,
	DurasiJamKerja: 9,
}

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

type memAbsensiRepo struct {
	attendance.AbsensiRepository
	rows map[string]attendance.Absensi
	open []attendance.Absensi
}

func (r *memAbsensiRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Absensi, error) {
	if row, ok := r.rows[dayKey(userID, date)]; ok {
		return &row, nil
	}
	return nil, nil
}

func (r *memAbsensiRepo) Upsert(ctx context.Context, a attendance.Absensi) (attendance.Absensi, error) {
	r.rows[dayKey(a.UserID, a.Tanggal)] = a
	return a, nil
}

func (r *memAbsensiRepo) Update(ctx context.Context, a attendance.Absensi) error {
	r.rows[dayKey(a.UserID, a.Tanggal)] = a
	return nil
}

func (r *memAbsensiRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Absensi, error) {
	var out []attendance.Absensi
	for _, row := range r.open {
		if row.Tanggal.Before(cutoff) {
			out = append(out, row)
		}
	}
	return out, nil
}

type memUserRepo struct {
	user.UserRepository
	users []user.User
}

func (r *memUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return r.users, nil
}

type memCutiRepo struct {
	leave.CutiRepository
	covered map[string]*leave.Cuti
}

func (r *memCutiRepo) GetApprovedCovering(ctx context.Context, userID string, date time.Time) (*leave.Cuti, error) {
	return r.covered[dayKey(userID, date)], nil
}

type memShiftRepo struct {
	shift.ShiftRepository
	shifts map[string]shift.Shift
}

func (r *memShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	sh, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

type fixedResolver struct {
	shifts map[string]schedule.EffectiveShift
}

func (r *fixedResolver) EffectiveShift(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	if eff, ok := r.shifts[dayKey(userID, date)]; ok {
		return eff, nil
	}
	return schedule.EffectiveShift{State: schedule.StateNone}, nil
}

func (r *fixedResolver) ResolveWithDefault(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return r.EffectiveShift(ctx, userID, date)
}

type memNotifier struct {
	notification.Service
	sent []notification.CreateNotificationRequest
}

func (n *memNotifier) Notify(req notification.CreateNotificationRequest) {
	n.sent = append(n.sent, req)
}

func (n *memNotifier) byType(t notification.NotificationType) []notification.CreateNotificationRequest {
	var out []notification.CreateNotificationRequest
	for _, req := range n.sent {
		if req.Type == t {
			out = append(out, req)
		}
	}
	return out
}

type jobFixture struct {
	jobs     *AttendanceJobs
	absensi  *memAbsensiRepo
	users    *memUserRepo
	cuti     *memCutiRepo
	resolver *fixedResolver
	notifier *memNotifier
}

func newJobFixture(t *testing.T, now time.Time) *jobFixture {
	t.Helper()
	f := &jobFixture{
		absensi:  &memAbsensiRepo{rows: map[string]attendance.Absensi{}},
		users:    &memUserRepo{},
		cuti:     &memCutiRepo{covered: map[string]*leave.Cuti{}},
		resolver: &fixedResolver{shifts: map[string]schedule.EffectiveShift{}},
		notifier: &memNotifier{},
	}
	shiftRepo := &memShiftRepo{shifts: map[string]shift.Shift{officeShift.ID: officeShift}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.jobs = NewAttendanceJobs(f.absensi, f.users, f.cuti, shiftRepo, f.resolver, f.notifier, logger).
		WithClock(func() time.Time { return now })
	return f
}

func scheduled() schedule.EffectiveShift {
	sh := officeShift
	return schedule.EffectiveShift{Shift: &sh, State: schedule.StateScheduled}
}

func TestMarkAbsentUsersWritesMangkir(t *testing.T) {
	now := time.Date(2026, 4, 7, 0, 10, 0, 0, time.Local)
	yesterday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local)
	f := newJobFixture(t, now)

	atasan := "spv-1"
	f.users.users = []user.User{
		{ID: "u-1", Nama: "Budi", AtasanID: &atasan}, // scheduled, absent
		{ID: "u-2", Nama: "Sari"},                    // day off
		{ID: "u-3", Nama: "Andi"},                    // already has a row
		{ID: "u-4", Nama: "Rina"},                    // on approved leave
	}
	f.resolver.shifts[dayKey("u-1", yesterday)] = scheduled()
	f.resolver.shifts[dayKey("u-3", yesterday)] = scheduled()
	f.resolver.shifts[dayKey("u-4", yesterday)] = scheduled()
	f.absensi.rows[dayKey("u-3", yesterday)] = attendance.Absensi{
		ID: "abs-3", UserID: "u-3", Tanggal: yesterday, StatusHadir: attendance.StatusHadirHadir,
	}
	f.cuti.covered[dayKey("u-4", yesterday)] = &leave.Cuti{ID: "cuti-1", UserID: "u-4"}

	require.NoError(t, f.jobs.MarkAbsentUsers(context.Background()))

	row, ok := f.absensi.rows[dayKey("u-1", yesterday)]
	require.True(t, ok)
	assert.Equal(t, attendance.StatusHadirMangkir, row.StatusHadir)
	require.NotNil(t, row.ShiftID)
	assert.Equal(t, officeShift.ID, *row.ShiftID)
	assert.Nil(t, row.JamMasuk)
	assert.False(t, row.IsLocked)

	_, ok = f.absensi.rows[dayKey("u-2", yesterday)]
	assert.False(t, ok)
	_, ok = f.absensi.rows[dayKey("u-4", yesterday)]
	assert.False(t, ok)
	assert.Equal(t, attendance.StatusHadirHadir, f.absensi.rows[dayKey("u-3", yesterday)].StatusHadir)

	mangkir := f.notifier.byType(notification.TypeMangkir)
	require.Len(t, mangkir, 2)
	assert.Equal(t, "u-1", mangkir[0].RecipientID)
	assert.Equal(t, "spv-1", mangkir[1].RecipientID)
}

func TestMarkAbsentUsersOnlyActsAtMidnightHour(t *testing.T) {
	now := time.Date(2026, 4, 7, 10, 0, 0, 0, time.Local)
	yesterday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local)
	f := newJobFixture(t, now)

	f.users.users = []user.User{{ID: "u-1", Nama: "Budi"}}
	f.resolver.shifts[dayKey("u-1", yesterday)] = scheduled()

	require.NoError(t, f.jobs.MarkAbsentUsers(context.Background()))
	assert.Empty(t, f.absensi.rows)
	assert.Empty(t, f.notifier.sent)
}

func TestCloseStaleAttendancesPunchesOutAtShiftEnd(t *testing.T) {
	now := time.Date(2026, 4, 7, 0, 5, 0, 0, time.Local)
	yesterday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local)
	f := newJobFixture(t, now)

	masuk := time.Date(2026, 4, 6, 8, 10, 0, 0, time.Local)
	shiftID := officeShift.ID
	f.absensi.open = []attendance.Absensi{{
		ID:          "abs-1",
		UserID:      "u-1",
		Tanggal:     yesterday,
		ShiftID:     &shiftID,
		JamMasuk:    &masuk,
		StatusHadir: attendance.StatusHadirHadir,
	}}

	require.NoError(t, f.jobs.CloseStaleAttendances(context.Background()))

	row := f.absensi.rows[dayKey("u-1", yesterday)]
	require.NotNil(t, row.JamPulang)
	assert.Equal(t, time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local), *row.JamPulang)
	require.NotNil(t, row.TotalJamKerja)
	assert.InDelta(t, 8.83, *row.TotalJamKerja, 0.001)
	require.NotNil(t, row.Catatan)
	assert.Contains(t, *row.Catatan, "ditutup otomatis")

	closed := f.notifier.byType(notification.TypeAutoClose)
	require.Len(t, closed, 1)
	assert.Equal(t, "u-1", closed[0].RecipientID)
}

func TestCloseStaleAttendancesLeavesUnresolvableRowOpen(t *testing.T) {
	now := time.Date(2026, 4, 7, 0, 5, 0, 0, time.Local)
	yesterday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local)
	f := newJobFixture(t, now)

	masuk := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f.absensi.open = []attendance.Absensi{{
		ID:          "abs-1",
		UserID:      "u-1",
		Tanggal:     yesterday,
		JamMasuk:    &masuk,
		StatusHadir: attendance.StatusHadirHadir,
	}}

	require.NoError(t, f.jobs.CloseStaleAttendances(context.Background()))
	assert.Empty(t, f.absensi.rows)
	assert.Empty(t, f.notifier.sent)
}
