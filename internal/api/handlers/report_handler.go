package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ReportHandler serves the on-demand monthly report export
type ReportHandler struct {
	reportRepo repositories.ReportRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportRepo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
	}
}

// ExportMonthlyReport handles GET /api/export/monthly-report
func (h *ReportHandler) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		respondWithAppError(w, apperrors.NewValidationError("month is required (YYYY-MM)"))
		return
	}
	if !monthPattern.MatchString(month) {
		respondWithAppError(w, apperrors.NewValidationError("month must be in YYYY-MM format"))
		return
	}

	branchID, err := queryInt(r, "branch_id")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	summary, err := h.reportRepo.MonthlySummary(r.Context(), month, branchID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	departments, err := h.reportRepo.DepartmentBreakdown(r.Context(), month, branchID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"month":                month,
		"summary":              summary,
		"department_breakdown": departments,
		"generated_at":         time.Now().UTC().Format(time.RFC3339),
	})
}
