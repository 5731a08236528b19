package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/monitoring"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func (m *memUserRepo) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.AtasanID != nil && *u.AtasanID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) GetByStore(ctx context.Context, store string) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.PenempatanStore != nil && *u.PenempatanStore == store {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type memAbsensiRepo struct {
	attendance.AbsensiRepository
	rows map[string]attendance.Absensi
}

func absensiKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *memAbsensiRepo) GetByUsersAndDate(ctx context.Context, userIDs []string, date time.Time) ([]attendance.Absensi, error) {
	var out []attendance.Absensi
	for _, id := range userIDs {
		if row, ok := m.rows[absensiKey(id, date)]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memAbsensiRepo) GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Absensi, error) {
	var out []attendance.Absensi
	for _, row := range m.rows {
		if row.UserID == userID && !row.Tanggal.Before(from) && !row.Tanggal.After(to) {
			out = append(out, row)
		}
	}
	return out, nil
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

type fixedResolver struct {
	eff schedule.EffectiveShift
}

func (f fixedResolver) EffectiveShift(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return f.eff, nil
}

func (f fixedResolver) ResolveWithDefault(ctx context.Context, userID string, date time.Time) (schedule.EffectiveShift, error) {
	return f.eff, nil
}

var officeShift = shift.Shift{ID: "sh1", Nama: "Office", JamMasuk: "08:00", JamPulang: "17:00", ToleransiMenit: 15}

func strPtr(s string) *string { return &s }

type fixture struct {
	svc     *ServiceImpl
	absensi *memAbsensiRepo
	cuti    *memCutiRepo
	now     time.Time
	today   time.Time
}

// Team: mgr-1 leads spv-1 and spv-2; spv-1 leads kry-1 and kry-2.
// hrc-1 is branch HR at Bandung; kry-2 is placed at Bandung.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	mgr := "mgr-1"
	spv1 := "spv-1"
	users := &memUserRepo{users: map[string]user.User{
		"mgr-1": {ID: "mgr-1", Nama: "Maria", Role: user.RoleManager},
		"spv-1": {ID: "spv-1", Nama: "Sari", Role: user.RoleSupervisor, AtasanID: &mgr, PenempatanStore: strPtr("Jakarta")},
		"spv-2": {ID: "spv-2", Nama: "Andi", Role: user.RoleSupervisor, AtasanID: &mgr, PenempatanStore: strPtr("Jakarta")},
		"kry-1": {ID: "kry-1", Nama: "Budi", Role: user.RoleKaryawan, AtasanID: &spv1, PenempatanStore: strPtr("Jakarta")},
		"kry-2": {ID: "kry-2", Nama: "Citra", Role: user.RoleKaryawan, AtasanID: &spv1, PenempatanStore: strPtr("Bandung")},
		"hr-1":  {ID: "hr-1", Nama: "Rina", Role: user.RoleHR},
		"hrc-1": {ID: "hrc-1", Nama: "Dewi", Role: user.RoleHRCabang, PenempatanStore: strPtr("Bandung")},
	}}
	absensi := &memAbsensiRepo{rows: map[string]attendance.Absensi{}}
	cuti := &memCutiRepo{}

	now := time.Date(2026, 4, 6, 18, 0, 0, 0, time.Local)
	svc := NewService(
		users,
		absensi,
		cuti,
		fixedResolver{eff: schedule.EffectiveShift{Shift: &officeShift, State: schedule.StateScheduled}},
		hierarchy.NewResolver(users),
	).WithClock(func() time.Time { return now })

	return &fixture{
		svc:     svc,
		absensi: absensi,
		cuti:    cuti,
		now:     now,
		today:   time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local),
	}
}

func authCtx(userID string) context.Context {
	return utils.WithAuthUser(context.Background(), userID, userID+"@example.com", user.RoleKaryawan)
}

func (f *fixture) seedRow(userID string, status attendance.StatusHadir, masuk bool, hours float64) {
	row := attendance.Absensi{UserID: userID, Tanggal: f.today, StatusHadir: status}
	if masuk {
		m := time.Date(2026, 4, 6, 8, 0, 0, 0, time.Local)
		p := time.Date(2026, 4, 6, 17, 0, 0, 0, time.Local)
		row.JamMasuk = &m
		row.JamPulang = &p
		row.TotalJamKerja = &hours
	}
	f.absensi.rows[absensiKey(userID, f.today)] = row
}

func TestMonitoring_ManagerScope(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Monitoring(authCtx("mgr-1"), monitoring.MonitoringFilter{})
	require.NoError(t, err)

	// Transitive subordinates only; never the manager itself or outsiders.
	names := map[string]bool{}
	for _, rec := range resp.Records {
		names[rec.UserID] = true
	}
	assert.Len(t, resp.Records, 4)
	assert.True(t, names["kry-1"])
	assert.True(t, names["kry-2"])
	assert.False(t, names["mgr-1"])
	assert.False(t, names["hr-1"])
}

func TestMonitoring_HRSeesEveryone(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Monitoring(authCtx("hr-1"), monitoring.MonitoringFilter{})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TotalCount)
}

func TestMonitoring_HRCabangScopedToStore(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Monitoring(authCtx("hrc-1"), monitoring.MonitoringFilter{})
	require.NoError(t, err)

	for _, rec := range resp.Records {
		require.NotNil(t, rec.PenempatanStore)
		assert.Equal(t, "Bandung", *rec.PenempatanStore)
	}
}

func TestMonitoring_KaryawanForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Monitoring(authCtx("kry-1"), monitoring.MonitoringFilter{})
	assert.ErrorIs(t, err, user.ErrApprovalNotAllowed)
}

func TestMonitoring_StoreFilterAndStoreList(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Monitoring(authCtx("mgr-1"), monitoring.MonitoringFilter{Store: "Bandung"})
	require.NoError(t, err)

	require.Len(t, resp.Records, 1)
	assert.Equal(t, "kry-2", resp.Records[0].UserID)
	assert.Equal(t, []string{"Bandung", "Jakarta"}, resp.Stores)
}

func TestMonitoring_SearchAndPagination(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Monitoring(authCtx("mgr-1"), monitoring.MonitoringFilter{Search: "budi"})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "kry-1", resp.Records[0].UserID)

	paged, err := f.svc.Monitoring(authCtx("mgr-1"), monitoring.MonitoringFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, paged.TotalCount)
	assert.Equal(t, 2, paged.TotalPages)
	assert.Len(t, paged.Records, 1)
}

func TestMonitoring_ClassifiesEachRecord(t *testing.T) {
	f := newFixture(t)
	f.seedRow("kry-1", attendance.StatusHadirHadir, true, 9)

	resp, err := f.svc.Monitoring(authCtx("spv-1"), monitoring.MonitoringFilter{})
	require.NoError(t, err)

	byID := map[string]monitoring.MonitoringRecord{}
	for _, rec := range resp.Records {
		byID[rec.UserID] = rec
	}
	assert.Equal(t, attendance.DisplayHadir, byID["kry-1"].Day.Status)
	// No punches and the shift ended: mangkir, correctable.
	assert.Equal(t, attendance.DisplayMangkir, byID["kry-2"].Day.Status)
	assert.True(t, byID["kry-2"].Day.CanRequestKoreksi)
}

func TestAnalytics_Counts(t *testing.T) {
	f := newFixture(t)
	f.seedRow("spv-1", attendance.StatusHadirHadir, true, 9)
	f.seedRow("spv-2", attendance.StatusHadirTelat, true, 8.5)
	f.cuti.approved = []leave.Cuti{{
		UserID:       "kry-1",
		Status:       leave.StatusApproved,
		TanggalMulai: f.today,
		TanggalAkhir: f.today,
	}}
	// kry-2 has nothing: scheduled, absent, no leave.

	resp, err := f.svc.Analytics(authCtx("mgr-1"), "")
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TeamSize)
	assert.Equal(t, 2, resp.Counts.Hadir)
	assert.Equal(t, 1, resp.Counts.Terlambat)
	assert.Equal(t, 1, resp.Counts.Cuti)
	assert.Equal(t, 1, resp.Counts.Mangkir)
	assert.Equal(t, 0, resp.Counts.Libur)
}

func TestAnalytics_TrendAndAverages(t *testing.T) {
	f := newFixture(t)
	f.seedRow("spv-1", attendance.StatusHadirHadir, true, 9)
	f.seedRow("spv-2", attendance.StatusHadirTelat, true, 8)

	// A hadir row two days earlier shows up in the trend window.
	past := f.today.AddDate(0, 0, -2)
	hours := 7.0
	f.absensi.rows[absensiKey("kry-1", past)] = attendance.Absensi{
		UserID:        "kry-1",
		Tanggal:       past,
		StatusHadir:   attendance.StatusHadirHadir,
		TotalJamKerja: &hours,
	}

	resp, err := f.svc.Analytics(authCtx("mgr-1"), "")
	require.NoError(t, err)

	require.Len(t, resp.Trend, 7)
	last := resp.Trend[6]
	assert.Equal(t, "2026-04-06", last.Tanggal)
	assert.Equal(t, 1, last.Hadir)
	assert.Equal(t, 1, last.Terlambat)
	assert.Equal(t, 1, resp.Trend[4].Hadir)

	// Team average over rows with recorded hours: (9+8+7)/3.
	assert.InDelta(t, 8.0, resp.TeamAvgJam, 0.001)
}
