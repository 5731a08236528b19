package middleware

import (
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/auth"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired verifies the access token parsed by jwtauth.Verifier and stamps
// the caller's identity onto the request context for the service layer.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			email, _ := claims["email"].(string)
			roleStr, _ := claims["role"].(string)

			ctx := utils.WithAuthUser(r.Context(), userID, email, user.Role(roleStr))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
