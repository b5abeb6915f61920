package repositories

import (
	"context"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
)

// CatalogRepository exposes the reference data the dashboard filters on
type CatalogRepository interface {
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)
}
