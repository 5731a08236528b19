package attendance

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTx satisfies database.TxManager without a database.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memAbsensiRepo struct {
	attendance.AbsensiRepository
	rows map[string]*attendance.Absensi
}

func newMemAbsensiRepo() *memAbsensiRepo {
	return &memAbsensiRepo{rows: map[string]*attendance.Absensi{}}
}

func absensiKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *memAbsensiRepo) Create(ctx context.Context, a attendance.Absensi) (attendance.Absensi, error) {
	key := absensiKey(a.UserID, a.Tanggal)
	if _, ok := m.rows[key]; ok {
		// Mirrors the unique (user_id, tanggal) constraint.
		return attendance.Absensi{}, attendance.ErrAlreadyCheckedIn
	}
	a.ID = key
	m.rows[key] = &a
	return a, nil
}

func (m *memAbsensiRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Absensi, error) {
	if row, ok := m.rows[absensiKey(userID, date)]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (m *memAbsensiRepo) GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Absensi, error) {
	var out []attendance.Absensi
	for _, row := range m.rows {
		if row.UserID == userID && !row.Tanggal.Before(from) && !row.Tanggal.After(to) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memAbsensiRepo) Update(ctx context.Context, a attendance.Absensi) error {
	key := absensiKey(a.UserID, a.Tanggal)
	if _, ok := m.rows[key]; !ok {
		return attendance.ErrAbsensiNotFound
	}
	m.rows[key] = &a
	return nil
}

func (m *memAbsensiRepo) Upsert(ctx context.Context, a attendance.Absensi) (attendance.Absensi, error) {
	key := absensiKey(a.UserID, a.Tanggal)
	a.ID = key
	m.rows[key] = &a
	return a, nil
}

type memOutletRepo struct {
	outlet.OutletRepository
	outlets map[string]outlet.Outlet
}

func (m *memOutletRepo) GetByID(ctx context.Context, id string) (outlet.Outlet, error) {
	o, ok := m.outlets[id]
	if !ok {
		return outlet.Outlet{}, outlet.ErrOutletNotFound
	}
	return o, nil
}

type memUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type memShiftRepo struct {
	shift.ShiftRepository
	shifts map[string]shift.Shift
}

func (m *memShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

type memCutiRepo struct {
	leave.CutiRepository
	approved []leave.Cuti
}

func (m *memCutiRepo) GetApprovedCovering(ctx context.Context, userID string, date time.Time) (*leave.Cuti, error) {
	for i := range m.approved {
		c := m.approved[i]
		if c.UserID == userID && !date.Before(c.TanggalMulai) && !date.After(c.TanggalAkhir) {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCutiRepo) GetApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.Cuti, error) {
	var out []leave.Cuti
	for _, c := range m.approved {
		if c.UserID == userID && !c.TanggalAkhir.Before(from) && !c.TanggalMulai.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

// fixedResolver returns the same effective shift for every date.
type fixedResolver struct {
	eff schedule.EffectiveShift
}

func (f fixedResolver) EffectiveShift(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return f.eff, nil
}

func (f fixedResolver) ResolveWithDefault(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return f.eff, nil
}

// scheduleGapResolver mimics a user whose month has no published jadwal row
// but who carries a default shift: only the default-aware lookup resolves.
type scheduleGapResolver struct {
	def shift.Shift
}

func (r scheduleGapResolver) EffectiveShift(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return schedule.EffectiveShift{State: schedule.StateNone}, nil
}

func (r scheduleGapResolver) ResolveWithDefault(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return schedule.EffectiveShift{Shift: &r.def, State: schedule.StateScheduled}, nil
}

type memStorage struct {
	uploads []string
	deletes []string
}

func (m *memStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	io.Copy(io.Discard, file)
	m.uploads = append(m.uploads, path)
	return "/uploads/" + path, nil
}
func (m *memStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}
func (m *memStorage) Delete(ctx context.Context, path string) error {
	m.deletes = append(m.deletes, path)
	return nil
}
func (m *memStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "/uploads/" + path, nil
}
func (m *memStorage) Exists(ctx context.Context, path string) (bool, error) { return false, nil }

type memNotifier struct {
	notification.Service
	sent []notification.CreateNotificationRequest
}

func (m *memNotifier) Notify(req notification.CreateNotificationRequest) {
	m.sent = append(m.sent, req)
}

type fixture struct {
	svc      *AbsensiServiceImpl
	absensi  *memAbsensiRepo
	storage  *memStorage
	notifier *memNotifier
	today    time.Time
}

var testOutlet = outlet.Outlet{
	ID:          "out-1",
	Nama:        "Outlet Pusat",
	Store:       "Pusat",
	Latitude:    -6.2,
	Longitude:   106.8,
	RadiusMeter: 100,
	IsActive:    true,
}

func newFixture(t *testing.T, sh shift.Shift, now time.Time) *fixture {
	t.Helper()
	atasan := "spv-1"
	users := &memUserRepo{users: map[string]user.User{
		"u1":    {ID: "u1", Nama: "Budi", Role: user.RoleKaryawan, AtasanID: &atasan},
		"spv-1": {ID: "spv-1", Nama: "Sari", Role: user.RoleSupervisor},
	}}
	outlets := &memOutletRepo{outlets: map[string]outlet.Outlet{
		testOutlet.ID: testOutlet,
		"out-2":       {ID: "out-2", Nama: "Outlet Dua", Latitude: -6.2, Longitude: 106.8, RadiusMeter: 100, IsActive: true},
	}}
	absensi := newMemAbsensiRepo()
	store := &memStorage{}
	notifier := &memNotifier{}

	eff := schedule.EffectiveShift{State: schedule.StateNone}
	if sh.ID != "" {
		eff = schedule.EffectiveShift{Shift: &sh, State: schedule.StateScheduled}
	}

	svc := NewAbsensiService(
		passthroughTx{},
		absensi,
		users,
		outlets,
		&memShiftRepo{shifts: map[string]shift.Shift{sh.ID: sh}},
		&memCutiRepo{},
		fixedResolver{eff: eff},
		store,
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	).WithClock(func() time.Time { return now })

	return &fixture{svc: svc, absensi: absensi, storage: store, notifier: notifier, today: startOfDay(now)}
}

func authCtx(userID string, role user.Role) context.Context {
	return utils.WithAuthUser(context.Background(), userID, userID+"@example.com", role)
}

func photo() string {
	return base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
}

func checkInReq() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		Foto:     photo(),
		Lokasi:   &attendance.Lokasi{Lat: testOutlet.Latitude, Lng: testOutlet.Longitude},
		OutletID: testOutlet.ID,
	}
}

func checkOutReq() attendance.CheckOutRequest {
	return attendance.CheckOutRequest{
		Foto:     photo(),
		Lokasi:   &attendance.Lokasi{Lat: testOutlet.Latitude, Lng: testOutlet.Longitude},
		OutletID: testOutlet.ID,
	}
}

func TestCheckIn_OnTimeZeroTolerance(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 0}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	resp, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), checkInReq())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHadirHadir, resp.StatusHadir)
	assert.Equal(t, 0, resp.MenitTerlambat)
	assert.False(t, resp.StatusTerlambat)
	assert.False(t, resp.RequiresKoreksi)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "spv-1", f.notifier.sent[0].RecipientID)
}

func TestCheckIn_HardLimitBreach(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 0}
	d := time.Date(2026, 4, 6, 10, 5, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	resp, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), checkInReq())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHadirMangkir, resp.StatusHadir)
	assert.Equal(t, 125, resp.MenitTerlambat)
	assert.True(t, resp.RequiresKoreksi)
}

func TestCheckIn_WithinTolerance(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	d := time.Date(2026, 4, 6, 8, 10, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	resp, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), checkInReq())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHadirHadir, resp.StatusHadir)
	assert.Equal(t, 10, resp.MenitTerlambat)
	assert.False(t, resp.StatusTerlambat)
}

func TestCheckIn_DuplicateRejectedAndOriginalUntouched(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)
	ctx := authCtx("u1", user.RoleKaryawan)

	first, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, checkInReq())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	row, err := f.absensi.GetByUserAndDate(ctx, "u1", f.today)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, first.JamMasuk, attendance.ToResponse(*row).JamMasuk)
}

func TestCheckIn_RejectedPunchRemovesStoredPhoto(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)
	assert.Empty(t, f.storage.deletes)

	_, err = f.svc.CheckIn(ctx, checkInReq())
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	require.Len(t, f.storage.deletes, 1)
	assert.Equal(t, "absensi/u1/2026-04-06-masuk.jpg", f.storage.deletes[0])
}

func TestCheckOut_RejectedPunchRemovesStoredPhoto(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	d := time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckOut(ctx, checkOutReq())
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, checkOutReq())
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	require.Len(t, f.storage.deletes, 1)
	assert.Equal(t, "absensi/u1/2026-04-06-pulang.jpg", f.storage.deletes[0])
}

func TestCheckIn_OutOfRange(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	req := checkInReq()
	// ~0.01 degrees is over a kilometre, far past the 100 m radius.
	req.Lokasi = &attendance.Lokasi{Lat: testOutlet.Latitude + 0.01, Lng: testOutlet.Longitude}

	_, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), req)
	assert.ErrorIs(t, err, attendance.ErrOutOfRange)
}

func TestCheckIn_NoShiftResolvable(t *testing.T) {
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, shift.Shift{}, d)

	_, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), checkInReq())
	assert.ErrorIs(t, err, attendance.ErrNoShiftResolvable)
}

func TestCheckIn_DefaultShiftWhenNothingScheduled(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	d := time.Date(2026, 4, 6, 8, 5, 0, 0, time.Local)
	f := newFixture(t, sh, d)
	f.svc.resolver = scheduleGapResolver{def: sh}

	resp, err := f.svc.CheckIn(authCtx("u1", user.RoleKaryawan), checkInReq())
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHadirHadir, resp.StatusHadir)
	assert.Equal(t, 5, resp.MenitTerlambat)
	assert.False(t, resp.StatusTerlambat)
}

func TestCheckIn_MissingInputs(t *testing.T) {
	sh := shift.Shift{ID: "sh1", JamMasuk: "08:00", JamPulang: "17:00"}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)
	ctx := authCtx("u1", user.RoleKaryawan)

	req := checkInReq()
	req.Foto = ""
	_, err := f.svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrMissingPhoto)

	req = checkInReq()
	req.Lokasi = nil
	_, err = f.svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrMissingLocation)

	req = checkInReq()
	req.OutletID = ""
	_, err = f.svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrNoOutletSelected)
}

func TestCheckIn_OnBehalfRequiresHRTier(t *testing.T) {
	sh := shift.Shift{ID: "sh1", JamMasuk: "08:00", JamPulang: "17:00"}
	d := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	req := checkInReq()
	req.UserID = "u1"

	_, err := f.svc.CheckIn(authCtx("spv-1", user.RoleSupervisor), req)
	assert.ErrorIs(t, err, attendance.ErrCheckInForbidden)

	_, err = f.svc.CheckIn(authCtx("hr-1", user.RoleHR), req)
	require.NoError(t, err)
}

func TestCheckOut_ComputesHours(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	checkInAt := time.Date(2026, 4, 6, 8, 10, 0, 0, time.Local)
	f := newFixture(t, sh, checkInAt)
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local) })
	resp, err := f.svc.CheckOut(ctx, checkOutReq())
	require.NoError(t, err)

	require.NotNil(t, resp.TotalJamKerja)
	assert.InDelta(t, 8.83, *resp.TotalJamKerja, 0.001)
	assert.False(t, resp.PulangCepat)
}

func TestCheckOut_EarlyLeave(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	f := newFixture(t, sh, time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local))
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return time.Date(2026, 4, 6, 16, 0, 0, 0, time.Local) })
	resp, err := f.svc.CheckOut(ctx, checkOutReq())
	require.NoError(t, err)

	assert.True(t, resp.PulangCepat)
	assert.Equal(t, 60, resp.MenitPulangCepat)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	d := time.Date(2026, 4, 6, 16, 0, 0, 0, time.Local)
	f := newFixture(t, sh, d)

	resp, err := f.svc.CheckOut(authCtx("u1", user.RoleKaryawan), checkOutReq())
	require.NoError(t, err)

	assert.Nil(t, resp.JamMasuk)
	require.NotNil(t, resp.JamPulang)
	require.NotNil(t, resp.Catatan)
	assert.Equal(t, "Tidak absen masuk", *resp.Catatan)
	assert.Nil(t, resp.TotalJamKerja)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	f := newFixture(t, sh, time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local))
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local) })
	_, err = f.svc.CheckOut(ctx, checkOutReq())
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, checkOutReq())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_OutletMismatch(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	f := newFixture(t, sh, time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local))
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local) })
	req := checkOutReq()
	req.OutletID = "out-2"
	_, err = f.svc.CheckOut(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrOutletMismatch)
}

func TestTodayStatus_SedangBekerja(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	f := newFixture(t, sh, time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local))
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	f.svc.WithClock(func() time.Time { return time.Date(2026, 4, 6, 12, 0, 0, 0, time.Local) })
	status, err := f.svc.TodayStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.DisplaySedangBekerja, status.Status)
	require.NotNil(t, status.Record)
}

func TestHistory_IncludesVirtualDays(t *testing.T) {
	sh := shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00"}
	now := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
	f := newFixture(t, sh, now)
	ctx := authCtx("u1", user.RoleKaryawan)

	_, err := f.svc.CheckIn(ctx, checkInReq())
	require.NoError(t, err)

	days, err := f.svc.History(ctx, 4, 2026)
	require.NoError(t, err)
	require.Len(t, days, 30)

	byDate := map[string]attendance.DayStatusResponse{}
	for _, d := range days {
		byDate[d.Tanggal] = d
	}

	// The check-in day carries a record; a past day without one is virtual
	// mangkir; a future day renders off.
	assert.NotNil(t, byDate["2026-04-06"].Record)
	assert.Nil(t, byDate["2026-04-03"].Record)
	assert.Equal(t, attendance.DisplayMangkir, byDate["2026-04-03"].Status)
	assert.True(t, byDate["2026-04-03"].CanRequestKoreksi)
	assert.Equal(t, attendance.DisplayOff, byDate["2026-04-20"].Status)
}
