package user

import "time"

type Role string

const (
	RoleKaryawan       Role = "karyawan"
	RoleSupervisor     Role = "supervisor"
	RoleManager        Role = "manager"
	RoleAreaManager    Role = "area_manager"
	RoleGeneralManager Role = "general_manager"
	RoleHR             Role = "hr"
	RoleHRCabang       Role = "hr_cabang"
	RoleAdmin          Role = "admin"
)

type User struct {
	ID              string
	Nama            string
	Email           string
	PasswordHash    *string
	Role            Role
	AtasanID        *string
	ShiftDefaultID  *string
	PenempatanStore *string
	IsActive        bool
	JatahCuti       int
	SisaCuti        int
	JoinDate        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	AtasanNama *string
}

// IsHRTier checks if the role bypasses hierarchy checks on approvals
// and sees every user in monitoring scope.
func (u *User) IsHRTier() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// IsHRCabang checks if the role is branch HR, scoped to its own store.
func (u *User) IsHRCabang() bool {
	return u.Role == RoleHRCabang
}

// CanApprove checks if the role may act on subordinate requests at all.
func (u *User) CanApprove() bool {
	return u.Role != RoleKaryawan
}

// CanManageMasterData checks if the role may mutate shifts, outlets and
// published schedules.
func (u *User) CanManageMasterData() bool {
	return u.IsHRTier() || u.IsHRCabang()
}
