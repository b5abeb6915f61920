package routes

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/api/handlers"
	"github.com/zenhealth/hospital-analytics/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler     *handlers.HealthHandler
	kpiHandler        *handlers.KPIHandler
	trendHandler      *handlers.TrendHandler
	comparisonHandler *handlers.ComparisonHandler
	alertHandler      *handlers.AlertHandler
	catalogHandler    *handlers.CatalogHandler
	reportHandler     *handlers.ReportHandler

	cacheMiddleware *middleware.CacheMiddleware
}

// NewRouter creates a new router
func NewRouter(
	healthHandler *handlers.HealthHandler,
	kpiHandler *handlers.KPIHandler,
	trendHandler *handlers.TrendHandler,
	comparisonHandler *handlers.ComparisonHandler,
	alertHandler *handlers.AlertHandler,
	catalogHandler *handlers.CatalogHandler,
	reportHandler *handlers.ReportHandler,
	cacheMiddleware *middleware.CacheMiddleware,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		healthHandler:     healthHandler,
		kpiHandler:        kpiHandler,
		trendHandler:      trendHandler,
		comparisonHandler: comparisonHandler,
		alertHandler:      alertHandler,
		catalogHandler:    catalogHandler,
		reportHandler:     reportHandler,
		cacheMiddleware:   cacheMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /api/health", r.healthHandler.GetHealth)

	// Headline metrics
	r.mux.HandleFunc("GET /api/kpis/summary", r.kpiHandler.GetSummary)

	// Time series
	r.mux.HandleFunc("GET /api/trends/admissions", r.trendHandler.GetAdmissionTrends)
	r.mux.HandleFunc("GET /api/trends/bed-occupancy", r.trendHandler.GetBedOccupancyTrends)
	r.mux.HandleFunc("GET /api/peak-hours", r.trendHandler.GetPeakTimes)

	// Cross-sectional comparisons
	r.mux.HandleFunc("GET /api/departments/comparison", r.comparisonHandler.GetDepartmentComparison)
	r.mux.HandleFunc("GET /api/branches/comparison", r.comparisonHandler.GetBranchComparison)
	r.mux.HandleFunc("GET /api/doctor-utilization", r.comparisonHandler.GetDoctorUtilization)
	r.mux.HandleFunc("GET /api/outcomes/summary", r.comparisonHandler.GetOutcomesSummary)

	// Alerts and reference data
	r.mux.HandleFunc("GET /api/alerts/active", r.alertHandler.GetActiveAlerts)
	r.mux.HandleFunc("GET /api/filters/options", r.catalogHandler.GetFilterOptions)

	// Monthly report export
	r.mux.HandleFunc("GET /api/export/monthly-report", r.reportHandler.ExportMonthlyReport)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
