package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJadwalRepo struct {
	schedule.JadwalRepository
	rows map[string]*schedule.Jadwal // keyed by userID|yyyy-mm-dd
}

func jadwalKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeJadwalRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*schedule.Jadwal, error) {
	return f.rows[jadwalKey(userID, date)], nil
}

type fakeSwapRepo struct {
	shiftswap.SwapRepository
	approved map[string]*shiftswap.ShiftChangeRequest
	pending  map[string]*shiftswap.ShiftChangeRequest
}

func (f *fakeSwapRepo) GetApprovedByUserAndDate(ctx context.Context, userID string, date time.Time) (*shiftswap.ShiftChangeRequest, error) {
	return f.approved[jadwalKey(userID, date)], nil
}

func (f *fakeSwapRepo) GetPendingByUserAndDate(ctx context.Context, userID string, date time.Time) (*shiftswap.ShiftChangeRequest, error) {
	return f.pending[jadwalKey(userID, date)], nil
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	shifts map[string]shift.Shift
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

var (
	pagi  = shift.Shift{ID: "sh-pagi", Nama: "Pagi", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}
	siang = shift.Shift{ID: "sh-siang", Nama: "Siang", JamMasuk: "13:00", JamPulang: "22:00", ToleransiMenit: 15}
)

func newTestResolver(jadwal *fakeJadwalRepo, swaps *fakeSwapRepo, users *fakeUserRepo) schedule.Resolver {
	if jadwal == nil {
		jadwal = &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{}}
	}
	if swaps == nil {
		swaps = &fakeSwapRepo{approved: map[string]*shiftswap.ShiftChangeRequest{}, pending: map[string]*shiftswap.ShiftChangeRequest{}}
	}
	if users == nil {
		users = &fakeUserRepo{users: map[string]user.User{}}
	}
	shifts := &fakeShiftRepo{shifts: map[string]shift.Shift{pagi.ID: pagi, siang.ID: siang}}
	return NewResolver(jadwal, swaps, shifts, users)
}

func TestEffectiveShift_ApprovedSwapWinsOverJadwal(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", date): {UserID: "u1", Tanggal: date, ShiftID: &pagi.ID, Shift: &pagi},
	}}
	target := siang.ID
	swaps := &fakeSwapRepo{
		approved: map[string]*shiftswap.ShiftChangeRequest{
			jadwalKey("u1", date): {ID: "sw1", UserID: "u1", Tanggal: date, ShiftTujuanID: &target},
		},
		pending: map[string]*shiftswap.ShiftChangeRequest{},
	}
	r := newTestResolver(jadwal, swaps, nil)

	eff, err := r.EffectiveShift(context.Background(), "u1", date)
	require.NoError(t, err)
	require.NotNil(t, eff.Shift)
	assert.Equal(t, siang.ID, eff.Shift.ID)
	assert.True(t, eff.IsChanged)
	assert.Equal(t, schedule.StateScheduled, eff.State)
}

func TestEffectiveShift_ApprovedSwapIntoDayOff(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", date): {UserID: "u1", Tanggal: date, ShiftID: &pagi.ID, Shift: &pagi},
	}}
	swaps := &fakeSwapRepo{
		approved: map[string]*shiftswap.ShiftChangeRequest{
			jadwalKey("u1", date): {ID: "sw1", UserID: "u1", Tanggal: date, ShiftTujuanID: nil},
		},
		pending: map[string]*shiftswap.ShiftChangeRequest{},
	}
	r := newTestResolver(jadwal, swaps, nil)

	eff, err := r.EffectiveShift(context.Background(), "u1", date)
	require.NoError(t, err)
	assert.True(t, eff.IsOff())
	assert.True(t, eff.IsChanged)
	assert.Equal(t, schedule.StateExplicitOff, eff.State)
}

func TestEffectiveShift_JadwalRow(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", date): {UserID: "u1", Tanggal: date, ShiftID: &pagi.ID, Shift: &pagi},
	}}
	r := newTestResolver(jadwal, nil, nil)

	eff, err := r.EffectiveShift(context.Background(), "u1", date)
	require.NoError(t, err)
	require.NotNil(t, eff.Shift)
	assert.Equal(t, pagi.ID, eff.Shift.ID)
	assert.False(t, eff.IsChanged)
}

func TestEffectiveShift_ExplicitOffVsNoRow(t *testing.T) {
	offDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	noneDate := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", offDate): {UserID: "u1", Tanggal: offDate, ShiftID: nil},
	}}
	r := newTestResolver(jadwal, nil, nil)
	ctx := context.Background()

	off, err := r.EffectiveShift(ctx, "u1", offDate)
	require.NoError(t, err)
	assert.True(t, off.IsOff())
	assert.Equal(t, schedule.StateExplicitOff, off.State)

	none, err := r.EffectiveShift(ctx, "u1", noneDate)
	require.NoError(t, err)
	assert.True(t, none.IsOff())
	assert.Equal(t, schedule.StateNone, none.State)
}

func TestEffectiveShift_SurfacesPendingSwap(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", date): {UserID: "u1", Tanggal: date, ShiftID: &pagi.ID, Shift: &pagi},
	}}
	swaps := &fakeSwapRepo{
		approved: map[string]*shiftswap.ShiftChangeRequest{},
		pending: map[string]*shiftswap.ShiftChangeRequest{
			jadwalKey("u1", date): {ID: "sw-pending", UserID: "u1", Tanggal: date},
		},
	}
	r := newTestResolver(jadwal, swaps, nil)

	eff, err := r.EffectiveShift(context.Background(), "u1", date)
	require.NoError(t, err)
	// Pending requests are display-only; resolution sticks with the schedule.
	require.NotNil(t, eff.Shift)
	assert.Equal(t, pagi.ID, eff.Shift.ID)
	require.NotNil(t, eff.PendingSwapID)
	assert.Equal(t, "sw-pending", *eff.PendingSwapID)
}

func TestResolveWithDefault_FillsOnlyUnscheduledDays(t *testing.T) {
	offDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	noneDate := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)
	jadwal := &fakeJadwalRepo{rows: map[string]*schedule.Jadwal{
		jadwalKey("u1", offDate): {UserID: "u1", Tanggal: offDate, ShiftID: nil},
	}}
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", ShiftDefaultID: &pagi.ID},
	}}
	r := newTestResolver(jadwal, nil, users)
	ctx := context.Background()

	// No published row: the default shift fills in.
	eff, err := r.ResolveWithDefault(ctx, "u1", noneDate)
	require.NoError(t, err)
	require.NotNil(t, eff.Shift)
	assert.Equal(t, pagi.ID, eff.Shift.ID)

	// Explicit day off stays off even with a default shift configured.
	eff, err = r.ResolveWithDefault(ctx, "u1", offDate)
	require.NoError(t, err)
	assert.True(t, eff.IsOff())
}

func TestResolveWithDefault_NoDefaultConfigured(t *testing.T) {
	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.Local)
	users := &fakeUserRepo{users: map[string]user.User{"u1": {ID: "u1"}}}
	r := newTestResolver(nil, nil, users)

	eff, err := r.ResolveWithDefault(context.Background(), "u1", date)
	require.NoError(t, err)
	assert.True(t, eff.IsOff())
	assert.Equal(t, schedule.StateNone, eff.State)
}
