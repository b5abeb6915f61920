package handlers

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
)

// KPIHandler serves the dashboard headline metrics
type KPIHandler struct {
	metricsRepo repositories.MetricsRepository
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(metricsRepo repositories.MetricsRepository) *KPIHandler {
	return &KPIHandler{
		metricsRepo: metricsRepo,
	}
}

// GetSummary handles GET /api/kpis/summary
func (h *KPIHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMetricsFilter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	summary, err := h.metricsRepo.KPISummary(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
