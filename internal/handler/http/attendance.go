package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/absenin/absensi-backend-go/internal/domain/attendance"
	"github.com/absenin/absensi-backend-go/internal/domain/monitoring"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
)

type AbsensiHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Monitoring(w http.ResponseWriter, r *http.Request)
	Analytics(w http.ResponseWriter, r *http.Request)
}

type AbsensiHandlerImpl struct {
	absensiService    attendance.AbsensiService
	monitoringService monitoring.Service
}

func NewAbsensiHandler(absensiService attendance.AbsensiService, monitoringService monitoring.Service) AbsensiHandler {
	return &AbsensiHandlerImpl{
		absensiService:    absensiService,
		monitoringService: monitoringService,
	}
}

// CheckIn implements AbsensiHandler.
func (h *AbsensiHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.absensiService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AbsensiHandler.
func (h *AbsensiHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.absensiService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// TodayStatus implements AbsensiHandler.
func (h *AbsensiHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.absensiService.TodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AbsensiHandler.
func (h *AbsensiHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())
	if month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	result, err := h.absensiService.History(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monitoring implements AbsensiHandler.
func (h *AbsensiHandlerImpl) Monitoring(w http.ResponseWriter, r *http.Request) {
	filter := monitoring.MonitoringFilter{
		Date:   r.URL.Query().Get("date"),
		Store:  r.URL.Query().Get("store"),
		Search: r.URL.Query().Get("search"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}

	result, err := h.monitoringService.Monitoring(r.Context(), filter)
	if err != nil {
		slog.Error("Monitoring service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Analytics implements AbsensiHandler.
func (h *AbsensiHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.monitoringService.Analytics(r.Context(), date)
	if err != nil {
		slog.Error("Analytics service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
