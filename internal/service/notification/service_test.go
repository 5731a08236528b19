package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/notification"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotificationRepo struct {
	mu   sync.Mutex
	rows []*notification.Notification
}

func (r *memNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, n)
	return nil
}

func (r *memNotificationRepo) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, ns...)
	return nil
}

func (r *memNotificationRepo) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Notification
	for _, n := range r.rows {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	total := len(out)
	start := (page - 1) * pageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *memNotificationRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.rows {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.rows {
		if n.RecipientID != userID {
			continue
		}
		for _, id := range ids {
			if n.ID == id {
				n.IsRead = true
				n.ReadAt = &now
			}
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.rows {
		if n.RecipientID == userID {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *memNotificationRepo) byRecipient(userID string) []*notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Notification
	for _, n := range r.rows {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out
}

type sentMail struct {
	To       string
	Kind     string // "decision" or "announcement"
	Decision string
	Title    string
}

type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *memMailer) SendDecision(to, employeeName, requestKind, decision string, notes *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Kind: "decision", Decision: decision})
	return nil
}

func (m *memMailer) SendAnnouncement(to, title, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Kind: "announcement", Title: title})
	return nil
}

func (m *memMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type announceUserRepo struct {
	user.UserRepository
	users []user.User
}

func (r *announceUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return r.users, nil
}

func (r *announceUserRepo) GetByStore(ctx context.Context, store string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.PenempatanStore != nil && *u.PenempatanStore == store {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (notification.Service, *memNotificationRepo, *memMailer, *sse.Hub, *announceUserRepo) {
	t.Helper()
	repo := &memNotificationRepo{}
	mailer := &memMailer{}
	hub := sse.NewHub()
	jakarta := "Jakarta"
	users := &announceUserRepo{users: []user.User{
		{ID: "u-1", Nama: "Budi", Email: "budi@toko.id", PenempatanStore: &jakarta},
		{ID: "u-2", Nama: "Sari", Email: "sari@toko.id"},
		{ID: "hr-1", Nama: "Rina", Email: "rina@toko.id"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewNotificationService(repo, users, hub, mailer, logger, Config{
		BatchSize:     5,
		FlushInterval: 10 * time.Millisecond,
	})
	return svc, repo, mailer, hub, users
}

func TestNotifyPersistsAndPublishes(t *testing.T) {
	svc, repo, _, hub, _ := newTestService(t)

	events, cleanup := hub.Subscribe("u-1")
	defer cleanup()

	svc.Notify(notification.CreateNotificationRequest{
		RecipientID: "u-1",
		Type:        notification.TypeCheckIn,
		Title:       "Absensi Masuk",
		Message:     "Budi telah melakukan absensi masuk",
	})
	svc.Close()

	rows := repo.byRecipient("u-1")
	require.Len(t, rows, 1)
	assert.Equal(t, notification.TypeCheckIn, rows[0].Type)
	assert.False(t, rows[0].IsRead)
	assert.NotEmpty(t, rows[0].ID)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		resp, ok := ev.Data.(notification.NotificationResponse)
		require.True(t, ok)
		assert.Equal(t, "Absensi Masuk", resp.Title)
	case <-time.After(time.Second):
		t.Fatal("no SSE event published")
	}
}

func TestNotifyManyBatchesAllRecipients(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	reqs := make([]notification.CreateNotificationRequest, 0, 8)
	for i := 0; i < 8; i++ {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: "u-1",
			Type:        notification.TypeJadwalUpdate,
			Title:       "Jadwal Diperbarui",
			Message:     "Jadwal shift Anda berubah",
		})
	}
	svc.NotifyMany(reqs)
	svc.Close()

	assert.Len(t, repo.byRecipient("u-1"), 8)
}

func TestDecisionNotificationSendsDecisionEmail(t *testing.T) {
	svc, _, mailer, _, _ := newTestService(t)

	catatan := "Bukti tidak lengkap"
	svc.Notify(notification.CreateNotificationRequest{
		RecipientID: "u-1",
		Type:        notification.TypeKoreksiHasil,
		Title:       "Hasil Koreksi Absensi",
		Message:     "Koreksi absensi 2026-04-06 Anda telah di-tolak",
		Email:       "budi@toko.id",
		Data:        notification.DecisionData("Budi", "koreksi absensi", "tolak", &catatan),
	})
	svc.Close()

	sent := mailer.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "decision", sent[0].Kind)
	assert.Equal(t, "budi@toko.id", sent[0].To)
	assert.Equal(t, "tolak", sent[0].Decision)
}

func TestNotifyWithoutEmailSkipsMailer(t *testing.T) {
	svc, _, mailer, _, _ := newTestService(t)

	svc.Notify(notification.CreateNotificationRequest{
		RecipientID: "u-1",
		Type:        notification.TypeCheckOut,
		Title:       "Absensi Pulang",
		Message:     "Budi telah melakukan absensi pulang",
	})
	svc.Close()

	assert.Empty(t, mailer.all())
}

func TestAnnounceToEveryoneSkipsSender(t *testing.T) {
	svc, repo, mailer, _, _ := newTestService(t)

	sent, err := svc.Announce(context.Background(), "hr-1", notification.AnnounceRequest{
		Title:   "Libur Nasional",
		Message: "Kantor tutup tanggal 17 Agustus",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	svc.Close()

	assert.Len(t, repo.byRecipient("u-1"), 1)
	assert.Len(t, repo.byRecipient("u-2"), 1)
	assert.Empty(t, repo.byRecipient("hr-1"))

	mails := mailer.all()
	assert.Len(t, mails, 2)
	for _, m := range mails {
		assert.Equal(t, "announcement", m.Kind)
		assert.Equal(t, "Libur Nasional", m.Title)
	}
}

func TestAnnounceScopedToStore(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	jakarta := "Jakarta"
	sent, err := svc.Announce(context.Background(), "hr-1", notification.AnnounceRequest{
		Title:   "Briefing Pagi",
		Message: "Briefing jam 07.30 di lantai 2",
		Store:   &jakarta,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	svc.Close()

	assert.Len(t, repo.byRecipient("u-1"), 1)
	assert.Empty(t, repo.byRecipient("u-2"))
}

func TestListAndMarkRead(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Notify(notification.CreateNotificationRequest{
			RecipientID: "u-1",
			Type:        notification.TypePengumuman,
			Title:       "Pengumuman",
			Message:     "Isi pengumuman",
		})
	}
	svc.Close()

	list, err := svc.List(ctx, "u-1", 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 3, list.UnreadCount)
	require.Len(t, list.Notifications, 3)

	require.NoError(t, svc.MarkRead(ctx, "u-1", []string{list.Notifications[0].ID}))
	list, err = svc.List(ctx, "u-1", 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkAllRead(ctx, "u-1"))
	count, err := svc.List(ctx, "u-1", 1, 20, false)
	require.NoError(t, err)
	assert.Zero(t, count.UnreadCount)
}
