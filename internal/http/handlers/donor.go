package handlers

import (
	"net/http"

	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/logx"
)

// DonorHandler serves donor profiles and their push devices.
type DonorHandler struct {
	usecase donorUsecase
	logger  logx.Logger
}

// NewDonorHandler creates a new DonorHandler.
func NewDonorHandler(logger logx.Logger, uc donorUsecase) *DonorHandler {
	return &DonorHandler{usecase: uc, logger: logger}
}

// Create handles POST /api/v1/donors.
// @Summary Register a donor
// @Tags donors
// @Accept json
// @Produce json
// @Param request body createDonorRequest true "Donor profile"
// @Success 201 {object} donorDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "donor already registered"
// @Router /api/v1/donors [post]
func (h *DonorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonorRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d := req.toModel()
	if err := h.usecase.Register(r.Context(), d); err != nil {
		writeServiceError(h.logger, w, r, err, "donor already registered")
		return
	}
	w.Header().Set("Location", "/api/v1/donors/"+d.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, donorToResponse(*d))
}

// Get handles GET /api/v1/donors/{id}.
func (h *DonorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err, "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, donorToResponse(*d))
}

// Update handles PATCH /api/v1/donors/{id}. Only the fields present in the body change.
// @Summary Update donor availability, location or last donation
// @Tags donors
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body updateDonorRequest true "Fields to change"
// @Success 200 {object} donorDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "not found"
// @Router /api/v1/donors/{id} [patch]
func (h *DonorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateDonorRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.UpdatePartial(r.Context(), req.toModel(id))
	if err != nil {
		writeServiceError(h.logger, w, r, err, "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, donorToResponse(*d))
}

// RegisterDevice handles POST /api/v1/users/{id}/devices.
func (h *DonorHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathParam(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req registerDeviceRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	dev := &domain.Device{UserID: userID, Token: req.Token, Platform: req.Platform}
	if err := h.usecase.RegisterDevice(r.Context(), dev); err != nil {
		writeServiceError(h.logger, w, r, err, "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"status": "ok"})
}

// RemoveDevice handles DELETE /api/v1/users/{id}/devices/{token}.
func (h *DonorHandler) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathParam(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	token, ok := pathParam(r, "token")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid token")
		return
	}

	if err := h.usecase.RemoveDevice(r.Context(), userID, token); err != nil {
		writeServiceError(h.logger, w, r, err, "conflict")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
