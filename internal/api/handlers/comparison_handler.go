package handlers

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
)

// ComparisonHandler serves the cross-sectional views: departments, branches,
// doctors and outcomes.
type ComparisonHandler struct {
	metricsRepo repositories.MetricsRepository
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(metricsRepo repositories.MetricsRepository) *ComparisonHandler {
	return &ComparisonHandler{
		metricsRepo: metricsRepo,
	}
}

// GetDepartmentComparison handles GET /api/departments/comparison
func (h *ComparisonHandler) GetDepartmentComparison(w http.ResponseWriter, r *http.Request) {
	branchID, err := queryInt(r, "branch_id")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	departments, err := h.metricsRepo.DepartmentComparison(r.Context(), branchID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
		"count":       len(departments),
	})
}

// GetBranchComparison handles GET /api/branches/comparison
func (h *ComparisonHandler) GetBranchComparison(w http.ResponseWriter, r *http.Request) {
	branches, err := h.metricsRepo.BranchComparison(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"branches": branches,
		"count":    len(branches),
	})
}

// GetDoctorUtilization handles GET /api/doctor-utilization
func (h *ComparisonHandler) GetDoctorUtilization(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMetricsFilter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	doctors, err := h.metricsRepo.DoctorUtilization(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetOutcomesSummary handles GET /api/outcomes/summary
func (h *ComparisonHandler) GetOutcomesSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMetricsFilter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	outcomes, err := h.metricsRepo.OutcomesSummary(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcomes": outcomes,
	})
}
