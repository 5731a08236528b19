package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/absenin/absensi-backend-go/internal/domain/auth"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	user.UserRepository
	byEmail map[string]user.User
	byID    map[string]user.User
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T, users ...user.User) auth.Service {
	t.Helper()
	repo := &memUserRepo{byEmail: map[string]user.User{}, byID: map[string]user.User{}}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(repo, jwtService, nil, logger)
}

func activeUser(t *testing.T, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	return user.User{
		ID:           "u-1",
		Nama:         "Budi",
		Email:        "budi@toko.id",
		PasswordHash: &hashed,
		Role:         user.RoleKaryawan,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, activeUser(t, "rahasia123"))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u-1", resp.UserID)
	assert.Equal(t, "Budi", resp.Nama)
	assert.Equal(t, string(user.RoleKaryawan), resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, activeUser(t, "rahasia123"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "budi@toko.id", Password: "salah"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ghost@toko.id", Password: "apapun"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	u := activeUser(t, "rahasia123")
	u.IsActive = false
	svc := newTestService(t, u)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLoginGoogleOnlyAccountRejectsPassword(t *testing.T) {
	u := activeUser(t, "rahasia123")
	u.PasswordHash = nil
	svc := newTestService(t, u)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc := newTestService(t, activeUser(t, "rahasia123"))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(t, activeUser(t, "rahasia123"))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestService(t, activeUser(t, "rahasia123"))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "budi@toko.id", Password: "rahasia123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
