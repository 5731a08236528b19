package notification

import "context"

// Service dispatches in-app (and optionally email) notifications. Dispatch
// is fire-and-forget: it runs after the caller's business transaction has
// committed and its failures are logged, never returned.
type Service interface {
	Notify(req CreateNotificationRequest)
	NotifyMany(reqs []CreateNotificationRequest)

	List(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (NotificationListResponse, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error

	// Announce fans a broadcast out to a store's users or to everyone.
	Announce(ctx context.Context, senderID string, req AnnounceRequest) (int, error)

	// Close drains the dispatch queue; called on shutdown.
	Close()
}
