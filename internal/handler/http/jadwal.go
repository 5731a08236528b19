package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/schedule"
	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/absenin/absensi-backend-go/internal/pkg/utils"
)

type JadwalHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type JadwalHandlerImpl struct {
	jadwalService schedule.JadwalService
}

func NewJadwalHandler(jadwalService schedule.JadwalService) JadwalHandler {
	return &JadwalHandlerImpl{jadwalService: jadwalService}
}

// GetMonth returns the published schedule for one month. Callers see their
// own month; master-data roles may pass user_id to inspect someone else's.
func (h *JadwalHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())
	if month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	userID := utils.GetUserID(r.Context())
	if target := r.URL.Query().Get("user_id"); target != "" && target != userID {
		actor := user.User{Role: utils.GetUserRole(r.Context())}
		if !actor.CanManageMasterData() {
			response.HandleError(w, user.ErrMasterDataForbidden)
			return
		}
		userID = target
	}

	result, err := h.jadwalService.GetMonth(r.Context(), userID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert publishes one schedule row; a null shift_id publishes an explicit
// day off.
func (h *JadwalHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertJadwalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Jadwal upsert decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.jadwalService.Upsert(r.Context(), req)
	if err != nil {
		slog.Error("Jadwal upsert service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule published", result)
}

// Delete clears a published row, returning the day to unscheduled.
func (h *JadwalHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	date := r.URL.Query().Get("date")
	if userID == "" || date == "" {
		response.BadRequest(w, "user_id and date are required", nil)
		return
	}

	if err := h.jadwalService.Delete(r.Context(), userID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule entry removed", nil)
}
