package auth

import "context"

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// LoginWithGoogle returns the provider consent URL plus the CSRF state
	// the handler should pin in a cookie. Empty URL means OAuth is disabled.
	LoginWithGoogle(ctx context.Context) (authURL, state string)
	HandleGoogleCallback(ctx context.Context, code string) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
