package middleware

import (
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

// RequireMasterData restricts a route to roles that may manage master data
// (HR, branch HR and admin). Runs after AuthRequired.
func RequireMasterData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := utils.GetUserRole(r.Context())
		u := user.User{Role: role}
		if !u.CanManageMasterData() {
			response.HandleError(w, user.ErrMasterDataForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
