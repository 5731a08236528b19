package notification

import "time"

type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}

	// Email carries the recipient address when the notification should also
	// go out by email; empty means in-app only.
	Email string
}

type AnnounceRequest struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Store   *string `json:"store"` // nil broadcasts to everyone
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// DecisionData builds the Data payload email dispatch expects for decided
// koreksi/cuti/shift-swap notifications.
func DecisionData(employeeName, requestKind, decision string, notes *string) map[string]interface{} {
	data := map[string]interface{}{
		"employee_name": employeeName,
		"request_kind":  requestKind,
		"decision":      decision,
	}
	if notes != nil {
		data["catatan"] = *notes
	}
	return data
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type AnnounceResponse struct {
	Recipients int `json:"recipients"`
}
