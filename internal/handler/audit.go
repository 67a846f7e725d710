package handler

import (
	"net/http"
	"strconv"

	"github.com/vaultpass/passgen-go/internal/service"
)

// AuditHandler serves the generation audit log.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// HandleList handles GET /api/v1/audit requests.
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid limit"))
			return
		}
		limit = n
	}

	resp, err := h.service.List(r.Context(), limit)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
