package handlers

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
)

// AlertHandler serves the unresolved resource alerts feed
type AlertHandler struct {
	metricsRepo repositories.MetricsRepository
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(metricsRepo repositories.MetricsRepository) *AlertHandler {
	return &AlertHandler{
		metricsRepo: metricsRepo,
	}
}

// GetActiveAlerts handles GET /api/alerts/active
func (h *AlertHandler) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	branchID, err := queryInt(r, "branch_id")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	alerts, err := h.metricsRepo.ActiveAlerts(r.Context(), branchID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
