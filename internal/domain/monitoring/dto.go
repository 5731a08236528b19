package monitoring

import (
	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
)

type MonitoringFilter struct {
	Date   string // YYYY-MM-DD, defaults to today
	Store  string
	Search string
	Page   int
	Limit  int
}

// MonitoringRecord is one subordinate's classified day.
type MonitoringRecord struct {
	UserID          string                       `json:"user_id"`
	UserNama        string                       `json:"user_nama"`
	Role            string                       `json:"role"`
	PenempatanStore *string                      `json:"penempatan_store,omitempty"`
	Day             attendance.DayStatusResponse `json:"day"`
}

type MonitoringResponse struct {
	Records    []MonitoringRecord `json:"records"`
	Stores     []string           `json:"stores"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// TeamCounts are same-day tallies across the scoped team.
type TeamCounts struct {
	Hadir     int `json:"hadir"`
	Terlambat int `json:"terlambat"`
	Cuti      int `json:"cuti"`
	Libur     int `json:"libur"`
	Mangkir   int `json:"mangkir"`
}

// TrendPoint is one day of the 7-day hadir/terlambat trend.
type TrendPoint struct {
	Tanggal   string `json:"tanggal"`
	Hadir     int    `json:"hadir"`
	Terlambat int    `json:"terlambat"`
}

type AnalyticsResponse struct {
	Date         string       `json:"date"`
	TeamSize     int          `json:"team_size"`
	Counts       TeamCounts   `json:"counts"`
	Trend        []TrendPoint `json:"trend"`
	AvgJamKerja float64      `json:"avg_jam_kerja_self"`
	TeamAvgJam  float64      `json:"avg_jam_kerja_team"`
}
