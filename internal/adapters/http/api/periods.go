package api

import (
	"net/http"

	"github.com/placarvendas/placar/internal/domain/period"
)

// PeriodsHandler lists the recognized period keys for the UI dropdown.
type PeriodsHandler struct{}

// NewPeriodsHandler creates a new periods handler.
func NewPeriodsHandler() *PeriodsHandler {
	return &PeriodsHandler{}
}

// HandleGetPeriods handles GET /periods requests.
func (h *PeriodsHandler) HandleGetPeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, period.Keys())
}
