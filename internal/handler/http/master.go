package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/outlet"
	"github.com/absenin/absensi-backend-go/internal/domain/shift"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// MasterHandler covers shift and outlet master data.
type MasterHandler interface {
	ListShifts(w http.ResponseWriter, r *http.Request)
	CreateShift(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	ListOutlets(w http.ResponseWriter, r *http.Request)
	CreateOutlet(w http.ResponseWriter, r *http.Request)
	UpdateOutlet(w http.ResponseWriter, r *http.Request)
	DeleteOutlet(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	shiftService  shift.ShiftService
	outletService outlet.OutletService
}

func NewMasterHandler(shiftService shift.ShiftService, outletService outlet.OutletService) MasterHandler {
	return &MasterHandlerImpl{
		shiftService:  shiftService,
		outletService: outletService,
	}
}

// ListShifts implements MasterHandler.
func (h *MasterHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateShift implements MasterHandler.
func (h *MasterHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Shift create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Shift create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// UpdateShift implements MasterHandler.
func (h *MasterHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Shift update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("Shift update service error", "error", err, "shift_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// DeleteShift implements MasterHandler.
func (h *MasterHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	if err := h.shiftService.Delete(r.Context(), id); err != nil {
		slog.Error("Shift delete service error", "error", err, "shift_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// ListOutlets implements MasterHandler.
func (h *MasterHandlerImpl) ListOutlets(w http.ResponseWriter, r *http.Request) {
	result, err := h.outletService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateOutlet implements MasterHandler.
func (h *MasterHandlerImpl) CreateOutlet(w http.ResponseWriter, r *http.Request) {
	var req outlet.UpsertOutletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Outlet create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.outletService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Outlet create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Outlet created", result)
}

// UpdateOutlet implements MasterHandler.
func (h *MasterHandlerImpl) UpdateOutlet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Outlet ID is required", nil)
		return
	}

	var req outlet.UpsertOutletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Outlet update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.outletService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("Outlet update service error", "error", err, "outlet_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Outlet updated", result)
}

// DeleteOutlet implements MasterHandler.
func (h *MasterHandlerImpl) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Outlet ID is required", nil)
		return
	}

	if err := h.outletService.Delete(r.Context(), id); err != nil {
		slog.Error("Outlet delete service error", "error", err, "outlet_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Outlet deactivated", nil)
}
