package handlers

import (
	"context"
	"net/http"

	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/logx"
)

// RequestHandler serves blood requests.
type RequestHandler struct {
	usecase requestUsecase
	logger  logx.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(logger logx.Logger, uc requestUsecase) *RequestHandler {
	return &RequestHandler{usecase: uc, logger: logger}
}

// Create handles POST /api/v1/requests.
// @Summary Submit a blood request
// @Description Stores a pending request and notifies nearby compatible donors asynchronously
// @Tags requests
// @Accept json
// @Produce json
// @Param request body createBloodRequest true "Request payload"
// @Success 201 {object} bloodRequestDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /api/v1/requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBloodRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	br := req.toModel()
	if err := h.usecase.Create(r.Context(), br); err != nil {
		writeServiceError(h.logger, w, r, err, "conflict")
		return
	}
	w.Header().Set("Location", "/api/v1/requests/"+br.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, bloodRequestToResponse(*br))
}

// Get handles GET /api/v1/requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.usecase.Get)
}

// Close handles POST /api/v1/requests/{id}/close.
func (h *RequestHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.usecase.Close)
}

// Fulfill handles POST /api/v1/requests/{id}/fulfill.
func (h *RequestHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.usecase.Fulfill)
}

func (h *RequestHandler) respond(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*domain.BloodRequest, error)) {
	id, ok := pathParam(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	br, err := op(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err, "request is not pending")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, bloodRequestToResponse(*br))
}
