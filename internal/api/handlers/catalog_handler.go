package handlers

import (
	"net/http"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
)

// CatalogHandler serves the filter dropdown reference data
type CatalogHandler struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogRepo repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
	}
}

// GetFilterOptions handles GET /api/filters/options
func (h *CatalogHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalogRepo.FilterOptions(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, options)
}
