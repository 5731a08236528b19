package monitoring

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/domain/monitoring"
	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	attendancesvc "github.com/absenin/absensi-backend-go/internal/service/attendance"
	"github.com/absenin/absensi-backend-go/internal/service/hierarchy"
)

const (
	defaultLimit  = 20
	trendDays     = 7
	maxMonitoring = 100
)

type ServiceImpl struct {
	userRepo    user.UserRepository
	absensiRepo attendance.AbsensiRepository
	cutiRepo    leave.CutiRepository
	resolver    schedule.Resolver
	hierarchy   *hierarchy.Resolver
	clock       func() time.Time
}

func NewService(
	userRepo user.UserRepository,
	absensiRepo attendance.AbsensiRepository,
	cutiRepo leave.CutiRepository,
	resolver schedule.Resolver,
	hierarchyResolver *hierarchy.Resolver,
) *ServiceImpl {
	return &ServiceImpl{
		userRepo:    userRepo,
		absensiRepo: absensiRepo,
		cutiRepo:    cutiRepo,
		resolver:    resolver,
		hierarchy:   hierarchyResolver,
		clock:       time.Now,
	}
}

func (s *ServiceImpl) WithClock(clock func() time.Time) *ServiceImpl {
	s.clock = clock
	return s
}

// scopedUsers returns the users the caller may see: everyone for HR tiers,
// the caller's store for branch HR, transitive subordinates otherwise.
func (s *ServiceImpl) scopedUsers(ctx context.Context) ([]user.User, error) {
	caller, err := s.userRepo.GetByID(ctx, utils.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	switch {
	case caller.IsHRTier():
		return s.userRepo.ListActive(ctx)
	case caller.IsHRCabang():
		if caller.PenempatanStore == nil {
			return nil, user.ErrNoStorePlacement
		}
		return s.userRepo.GetByStore(ctx, *caller.PenempatanStore)
	case caller.CanApprove():
		subs, err := s.hierarchy.SubordinatesOf(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		return s.userRepo.GetByIDs(ctx, subs)
	default:
		return nil, user.ErrApprovalNotAllowed
	}
}

func (s *ServiceImpl) Monitoring(ctx context.Context, filter monitoring.MonitoringFilter) (monitoring.MonitoringResponse, error) {
	var resp monitoring.MonitoringResponse

	now := s.clock()
	date := startOfDay(now)
	if filter.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Date, now.Location())
		if err == nil {
			date = parsed
		}
	}

	users, err := s.scopedUsers(ctx)
	if err != nil {
		return resp, err
	}

	stores := distinctStores(users)

	if filter.Store != "" {
		users = filterByStore(users, filter.Store)
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		kept := users[:0]
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Nama), needle) {
				kept = append(kept, u)
			}
		}
		users = kept
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Nama < users[j].Nama })

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxMonitoring {
		limit = maxMonitoring
	}
	total := len(users)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageUsers := users[start:end]

	ids := make([]string, 0, len(pageUsers))
	for _, u := range pageUsers {
		ids = append(ids, u.ID)
	}
	rows, err := s.absensiRepo.GetByUsersAndDate(ctx, ids, date)
	if err != nil {
		return resp, err
	}
	byUser := make(map[string]*attendance.Absensi, len(rows))
	for i := range rows {
		byUser[rows[i].UserID] = &rows[i]
	}

	records := make([]monitoring.MonitoringRecord, 0, len(pageUsers))
	for _, u := range pageUsers {
		day, err := s.classifyDay(ctx, u.ID, date, now, byUser[u.ID])
		if err != nil {
			return resp, err
		}
		records = append(records, monitoring.MonitoringRecord{
			UserID:          u.ID,
			UserNama:        u.Nama,
			Role:            string(u.Role),
			PenempatanStore: u.PenempatanStore,
			Day:             day,
		})
	}

	return monitoring.MonitoringResponse{
		Records:    records,
		Stores:     stores,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ServiceImpl) Analytics(ctx context.Context, dateStr string) (monitoring.AnalyticsResponse, error) {
	var resp monitoring.AnalyticsResponse

	now := s.clock()
	date := startOfDay(now)
	if dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
		if err == nil {
			date = parsed
		}
	}

	users, err := s.scopedUsers(ctx)
	if err != nil {
		return resp, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	counts := monitoring.TeamCounts{}
	rows, err := s.absensiRepo.GetByUsersAndDate(ctx, ids, date)
	if err != nil {
		return resp, err
	}
	byUser := make(map[string]*attendance.Absensi, len(rows))
	for i := range rows {
		byUser[rows[i].UserID] = &rows[i]
	}
	for _, u := range users {
		day, err := s.classifyDay(ctx, u.ID, date, now, byUser[u.ID])
		if err != nil {
			return resp, err
		}
		tally(&counts, day.Status)
	}

	trend, teamTotal, teamRows, err := s.buildTrend(ctx, ids, date)
	if err != nil {
		return resp, err
	}

	selfAvg, err := s.avgHoursSelf(ctx, utils.GetUserID(ctx), date)
	if err != nil {
		return resp, err
	}

	teamAvg := 0.0
	if teamRows > 0 {
		teamAvg = utils.RoundTo2(teamTotal / float64(teamRows))
	}

	return monitoring.AnalyticsResponse{
		Date:        date.Format("2006-01-02"),
		TeamSize:    len(users),
		Counts:      counts,
		Trend:       trend,
		AvgJamKerja: selfAvg,
		TeamAvgJam:  teamAvg,
	}, nil
}

func (s *ServiceImpl) classifyDay(ctx context.Context, userID string, date, now time.Time, rec *attendance.Absensi) (attendance.DayStatusResponse, error) {
	eff, err := s.resolver.EffectiveShift(ctx, userID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	cuti, err := s.cutiRepo.GetApprovedCovering(ctx, userID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	cls := attendancesvc.Classify(attendancesvc.DayInput{
		Date:      date,
		Now:       now,
		Effective: eff,
		Record:    rec,
		OnLeave:   cuti != nil,
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
	return resp, nil
}

// buildTrend counts hadir/terlambat from raw statuses over the window and
// accumulates team worked hours along the way.
func (s *ServiceImpl) buildTrend(ctx context.Context, ids []string, date time.Time) ([]monitoring.TrendPoint, float64, int, error) {
	trend := make([]monitoring.TrendPoint, 0, trendDays)
	var totalHours float64
	var hourRows int

	for i := trendDays - 1; i >= 0; i-- {
		day := date.AddDate(0, 0, -i)
		rows, err := s.absensiRepo.GetByUsersAndDate(ctx, ids, day)
		if err != nil {
			return nil, 0, 0, err
		}
		point := monitoring.TrendPoint{Tanggal: day.Format("2006-01-02")}
		for _, row := range rows {
			switch row.StatusHadir {
			case attendance.StatusHadirHadir:
				point.Hadir++
			case attendance.StatusHadirTelat:
				point.Terlambat++
			}
			if row.TotalJamKerja != nil {
				totalHours += *row.TotalJamKerja
				hourRows++
			}
		}
		trend = append(trend, point)
	}
	return trend, totalHours, hourRows, nil
}

func (s *ServiceImpl) avgHoursSelf(ctx context.Context, userID string, date time.Time) (float64, error) {
	from := date.AddDate(0, 0, -(trendDays - 1))
	rows, err := s.absensiRepo.GetByUserAndRange(ctx, userID, from, date)
	if err != nil {
		return 0, err
	}
	var total float64
	var n int
	for _, row := range rows {
		if row.TotalJamKerja != nil {
			total += *row.TotalJamKerja
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return utils.RoundTo2(total / float64(n)), nil
}

// tally buckets a classified status into the team counters. Partial days
// (missing one punch) still count as present.
func tally(counts *monitoring.TeamCounts, status attendance.DisplayStatus) {
	switch status {
	case attendance.DisplayHadir, attendance.DisplaySedangBekerja,
		attendance.DisplayTidakAbsenPulang, attendance.DisplayTidakAbsenMasuk:
		counts.Hadir++
	case attendance.DisplayHadirTelat:
		counts.Hadir++
		counts.Terlambat++
	case attendance.DisplayCuti,
		attendance.DisplayStatus(attendance.StatusHadirSakit),
		attendance.DisplayStatus(attendance.StatusHadirSakitTPS),
		attendance.DisplayStatus(attendance.StatusHadirIzin):
		counts.Cuti++
	case attendance.DisplayOff, attendance.DisplayStatus(attendance.StatusHadirLibur):
		counts.Libur++
	case attendance.DisplayMangkir:
		counts.Mangkir++
	}
}

func distinctStores(users []user.User) []string {
	seen := map[string]struct{}{}
	var stores []string
	for _, u := range users {
		if u.PenempatanStore == nil || *u.PenempatanStore == "" {
			continue
		}
		if _, ok := seen[*u.PenempatanStore]; ok {
			continue
		}
		seen[*u.PenempatanStore] = struct{}{}
		stores = append(stores, *u.PenempatanStore)
	}
	sort.Strings(stores)
	return stores
}

func filterByStore(users []user.User, store string) []user.User {
	kept := users[:0]
	for _, u := range users {
		if u.PenempatanStore != nil && *u.PenempatanStore == store {
			kept = append(kept, u)
		}
	}
	return kept
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
