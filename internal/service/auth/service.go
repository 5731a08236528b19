package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/absenin/absensi-backend-go/internal/domain/auth"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/pkg/jwt"
	"github.com/absenin/absensi-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo user.UserRepository
	jwt      jwt.Service
	google   oauth.GoogleService
	logger   *slog.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, google oauth.GoogleService, logger *slog.Logger) auth.Service {
	return &AuthServiceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
		google:   google,
		logger:   logger,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(u)
}

// LoginWithGoogle implements auth.Service.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context) (string, string) {
	if a.google == nil {
		return "", ""
	}
	state := a.google.GenerateState("")
	return a.google.RedirectURL(state), state
}

// HandleGoogleCallback implements auth.Service. Google login only signs in
// existing accounts; it never provisions users.
func (a *AuthServiceImpl) HandleGoogleCallback(ctx context.Context, code string) (auth.LoginResponse, error) {
	if a.google == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	u, err := a.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.issueTokens(u)
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if a.jwt.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrUserNotFound
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, auth.ErrUserInactive
	}

	accessToken, expiresIn, err := a.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresIn,
	}, nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := a.jwt.ValidateRefreshToken(refreshToken); err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}
	a.jwt.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	var resp auth.LoginResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	resp.UserID = u.ID
	resp.Nama = u.Nama
	resp.Role = string(u.Role)
	return resp, nil
}
