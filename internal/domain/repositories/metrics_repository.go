package repositories

import (
	"context"
	"time"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
)

// TrendPeriod selects the bucket size for admission trends
type TrendPeriod string

const (
	TrendDaily   TrendPeriod = "daily"
	TrendWeekly  TrendPeriod = "weekly"
	TrendMonthly TrendPeriod = "monthly"
)

// Valid reports whether the period is one of the supported bucket sizes
func (p TrendPeriod) Valid() bool {
	switch p {
	case TrendDaily, TrendWeekly, TrendMonthly:
		return true
	}
	return false
}

// MetricsFilter is the typed filter criteria shared by every aggregation.
// Each set field maps to exactly one parameterized predicate; unset fields
// add no predicate at all.
type MetricsFilter struct {
	BranchID  *int
	DeptID    *int
	StartDate *time.Time
	EndDate   *time.Time
	Month     string // YYYY-MM, scopes admission_date to one calendar month
}

// MetricsRepository is the read-only aggregation layer behind the dashboard.
// Every operation issues one or more parameterized aggregate queries and has
// no side effects.
type MetricsRepository interface {
	KPISummary(ctx context.Context, filter MetricsFilter) (*entities.KPISummary, error)
	AdmissionTrends(ctx context.Context, period TrendPeriod, filter MetricsFilter) ([]entities.AdmissionTrendPoint, error)
	BedOccupancyTrends(ctx context.Context, filter MetricsFilter) ([]entities.OccupancyTrendPoint, error)
	DepartmentComparison(ctx context.Context, branchID *int) ([]entities.DepartmentComparison, error)
	BranchComparison(ctx context.Context) ([]entities.BranchComparison, error)
	DoctorUtilization(ctx context.Context, filter MetricsFilter) ([]entities.DoctorUtilization, error)
	OutcomesSummary(ctx context.Context, filter MetricsFilter) ([]entities.OutcomeCount, error)
	ActiveAlerts(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error)
	PeakTimes(ctx context.Context, branchID *int) (*entities.PeakTimes, error)
}
