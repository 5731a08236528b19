package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absenin/absensi-backend-go/internal/domain/correction"
	"github.com/absenin/absensi-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type KoreksiHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
}

type KoreksiHandlerImpl struct {
	koreksiService correction.KoreksiService
}

func NewKoreksiHandler(koreksiService correction.KoreksiService) KoreksiHandler {
	return &KoreksiHandlerImpl{koreksiService: koreksiService}
}

// Create implements KoreksiHandler.
func (h *KoreksiHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req correction.CreateKoreksiRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Koreksi create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.koreksiService.CreateRequest(r.Context(), req)
	if err != nil {
		slog.Error("Koreksi create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", result)
}

// List returns the caller's own requests, or the pending inbox when the
// caller asks for ?scope=approval.
func (h *KoreksiHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []correction.KoreksiResponse
		err    error
	)
	if r.URL.Query().Get("scope") == "approval" {
		result, err = h.koreksiService.ListPendingForApprover(r.Context())
	} else {
		result, err = h.koreksiService.ListMine(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Validate implements KoreksiHandler.
func (h *KoreksiHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction ID is required", nil)
		return
	}

	var req correction.ValidateKoreksiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Koreksi validate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.koreksiService.ValidateRequest(r.Context(), id, req)
	if err != nil {
		slog.Error("Koreksi validate service error", "error", err, "koreksi_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request processed", result)
}
