package handlers

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// TrendHandler serves the time-series views behind the dashboard charts
type TrendHandler struct {
	metricsRepo repositories.MetricsRepository
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(metricsRepo repositories.MetricsRepository) *TrendHandler {
	return &TrendHandler{
		metricsRepo: metricsRepo,
	}
}

// GetAdmissionTrends handles GET /api/trends/admissions
func (h *TrendHandler) GetAdmissionTrends(w http.ResponseWriter, r *http.Request) {
	period := repositories.TrendPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = repositories.TrendDaily
	}
	if !period.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("period must be daily, weekly or monthly"))
		return
	}

	filter, err := parseMetricsFilter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	points, err := h.metricsRepo.AdmissionTrends(r.Context(), period, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"period": string(period),
		"trends": points,
	})
}

// GetBedOccupancyTrends handles GET /api/trends/bed-occupancy
func (h *TrendHandler) GetBedOccupancyTrends(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMetricsFilter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	points, err := h.metricsRepo.BedOccupancyTrends(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": points,
	})
}

// GetPeakTimes handles GET /api/peak-hours
func (h *TrendHandler) GetPeakTimes(w http.ResponseWriter, r *http.Request) {
	branchID, err := queryInt(r, "branch_id")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	peak, err := h.metricsRepo.PeakTimes(r.Context(), branchID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, peak)
}
