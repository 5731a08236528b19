package utils

import (
	"context"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
)

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyRole   ctxKey = "role"
	ctxKeyEmail  ctxKey = "email"
)

// WithAuthUser stamps the authenticated caller onto the context. Set by the
// auth middleware after token verification.
func WithAuthUser(ctx context.Context, userID, email string, role user.Role) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	ctx = context.WithValue(ctx, ctxKeyEmail, email)
	return context.WithValue(ctx, ctxKeyRole, role)
}

func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}

func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(ctxKeyEmail).(string)
	return email
}

func GetUserRole(ctx context.Context) user.Role {
	role, _ := ctx.Value(ctxKeyRole).(user.Role)
	return role
}
