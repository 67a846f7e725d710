package handler

import (
	"net/http"

	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

// StrengthHandler handles HTTP requests for password strength analysis.
type StrengthHandler struct {
	service *service.StrengthService
}

// NewStrengthHandler creates a new StrengthHandler.
func NewStrengthHandler(svc *service.StrengthService) *StrengthHandler {
	return &StrengthHandler{service: svc}
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *StrengthHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Analyze(req)
	if err != nil {
		if service.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
