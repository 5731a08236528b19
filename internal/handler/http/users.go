package http

import (
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

type UserHandler interface {
	Subordinates(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Subordinates implements UserHandler.
func (h *UserHandlerImpl) Subordinates(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.userService.Subordinates(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
