package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/leave"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CutiHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
}

type CutiHandlerImpl struct {
	cutiService leave.CutiService
}

func NewCutiHandler(cutiService leave.CutiService) CutiHandler {
	return &CutiHandlerImpl{cutiService: cutiService}
}

// Apply implements CutiHandler.
func (h *CutiHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyCutiRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Cuti apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.cutiService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("Cuti apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// List returns the caller's own requests, or the pending inbox when the
// caller asks for ?scope=approval.
func (h *CutiHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []leave.CutiResponse
		err    error
	)
	if r.URL.Query().Get("scope") == "approval" {
		result, err = h.cutiService.ListPendingForApprover(r.Context())
	} else {
		result, err = h.cutiService.ListMine(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Validate implements CutiHandler.
func (h *CutiHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.ValidateCutiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Cuti validate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.cutiService.Validate(r.Context(), id, req)
	if err != nil {
		slog.Error("Cuti validate service error", "error", err, "cuti_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request processed", result)
}
