package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/email"
	"github.com/absenin/absensi-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds dispatch tuning knobs.
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo     notification.Repository
	userRepo user.UserRepository
	hub      *sse.Hub
	mailer   email.EmailService
	logger   *slog.Logger
	config   Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts the background dispatch workers. Dispatch
// never returns an error to callers: a committed business transaction must
// not be undone because a notification failed.
func NewNotificationService(
	repo notification.Repository,
	userRepo user.UserRepository,
	hub *sse.Hub,
	mailer email.EmailService,
	logger *slog.Logger,
	cfg Config,
) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		mailer:   mailer,
		logger:   logger,
		config:   cfg,
		queue:    make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification dispatch started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entities := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			entities[i] = toEntity(req)
		}

		if err := s.repo.CreateBatch(ctx, entities); err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "count", len(entities), "error", err)
		} else {
			for _, n := range entities {
				s.hub.Publish(n.RecipientID, sse.Event{
					UserID: n.RecipientID,
					Event:  "notification",
					Data:   toResponse(n),
				})
			}
		}

		for _, req := range batch {
			s.sendEmail(req)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

// sendEmail is best-effort; the mailer already logs its own failures.
func (s *service) sendEmail(req notification.CreateNotificationRequest) {
	if s.mailer == nil || req.Email == "" {
		return
	}

	var err error
	switch req.Type {
	case notification.TypeKoreksiHasil, notification.TypeCutiHasil, notification.TypeSwapHasil:
		var notes *string
		if v, ok := req.Data["catatan"].(string); ok && v != "" {
			notes = &v
		}
		err = s.mailer.SendDecision(
			req.Email,
			dataString(req.Data, "employee_name"),
			dataString(req.Data, "request_kind"),
			dataString(req.Data, "decision"),
			notes,
		)
	default:
		err = s.mailer.SendAnnouncement(req.Email, req.Title, req.Message)
	}
	if err != nil {
		s.logger.Warn("notification email failed", "recipient", req.RecipientID, "error", err)
	}
}

func dataString(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

func (s *service) Notify(req notification.CreateNotificationRequest) {
	select {
	case s.queue <- req:
	default:
		// Queue full; insert inline rather than dropping.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.directInsert(ctx, req)
	}
}

func (s *service) NotifyMany(reqs []notification.CreateNotificationRequest) {
	for _, req := range reqs {
		s.Notify(req)
	}
}

func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) {
	n := toEntity(req)
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("notification insert failed", "recipient", req.RecipientID, "error", err)
		return
	}
	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  "notification",
		Data:   toResponse(n),
	})
	s.sendEmail(req)
}

func (s *service) List(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	responses := make([]notification.NotificationResponse, len(rows))
	for i, n := range rows {
		responses[i] = toResponse(n)
	}
	return notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID string, ids []string) error {
	return s.repo.MarkAsRead(ctx, ids, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) Announce(ctx context.Context, senderID string, req notification.AnnounceRequest) (int, error) {
	var recipients []user.User
	var err error
	if req.Store != nil {
		recipients, err = s.userRepo.GetByStore(ctx, *req.Store)
	} else {
		recipients, err = s.userRepo.ListActive(ctx)
	}
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, u := range recipients {
		if u.ID == senderID {
			continue
		}
		s.Notify(notification.CreateNotificationRequest{
			RecipientID: u.ID,
			SenderID:    &senderID,
			Type:        notification.TypePengumuman,
			Title:       req.Title,
			Message:     req.Message,
			Email:       u.Email,
		})
		sent++
	}
	return sent, nil
}

func (s *service) Close() {
	close(s.stopCh)
	s.wg.Wait()
}

func toEntity(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
