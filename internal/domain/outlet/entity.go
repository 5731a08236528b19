package outlet

import "time"

// Outlet is a branch location with a geofence radius. Attendance punches
// must land within RadiusMeter of the selected outlet.
type Outlet struct {
	ID          string
	Nama        string
	Store       string
	Latitude    float64
	Longitude   float64
	RadiusMeter int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
