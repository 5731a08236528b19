package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCheckIn      NotificationType = "absensi_check_in"
	TypeCheckOut     NotificationType = "absensi_check_out"
	TypeKoreksiBaru  NotificationType = "koreksi_submitted"
	TypeKoreksiHasil NotificationType = "koreksi_decided"
	TypeCutiBaru     NotificationType = "cuti_submitted"
	TypeCutiHasil    NotificationType = "cuti_decided"
	TypeSwapBaru     NotificationType = "shift_swap_submitted"
	TypeSwapHasil    NotificationType = "shift_swap_decided"
	TypeJadwalUpdate NotificationType = "jadwal_updated"
	TypePengumuman   NotificationType = "pengumuman"
	TypeAutoClose    NotificationType = "absensi_auto_closed"
	TypeMangkir      NotificationType = "absensi_mangkir"
)

// Notification is one in-app message for one recipient.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
