package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/shiftswap"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SwapHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
}

type SwapHandlerImpl struct {
	swapService shiftswap.SwapService
}

func NewSwapHandler(swapService shiftswap.SwapService) SwapHandler {
	return &SwapHandlerImpl{swapService: swapService}
}

// Create implements SwapHandler.
func (h *SwapHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shiftswap.CreateSwapRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Shift swap create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.CreateRequest(r.Context(), req)
	if err != nil {
		slog.Error("Shift swap create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift change request submitted", result)
}

// List returns the caller's own requests, or the pending inbox when the
// caller asks for ?scope=approval.
func (h *SwapHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []shiftswap.SwapResponse
		err    error
	)
	if r.URL.Query().Get("scope") == "approval" {
		result, err = h.swapService.ListPendingForApprover(r.Context())
	} else {
		result, err = h.swapService.ListMine(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Respond implements SwapHandler.
func (h *SwapHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift change request ID is required", nil)
		return
	}

	var req shiftswap.RespondSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Shift swap respond decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Respond(r.Context(), id, req)
	if err != nil {
		slog.Error("Shift swap respond service error", "error", err, "swap_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift change request processed", result)
}
