package repositories

import (
	"context"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
)

// ReportRepository serves the monthly report: the same aggregate family as
// MetricsRepository but scoped to one calendar month (YYYY-MM) and an
// optional branch.
type ReportRepository interface {
	MonthlySummary(ctx context.Context, month string, branchID *int) (*entities.MonthlySummary, error)
	DepartmentBreakdown(ctx context.Context, month string, branchID *int) ([]entities.DepartmentBreakdownRow, error)
	OccupancyStats(ctx context.Context, month string, branchID *int) (*entities.OccupancyStats, error)
	DoctorPerformance(ctx context.Context, month string, branchID *int) ([]entities.DoctorPerformance, error)
	OutcomeStats(ctx context.Context, month string, branchID *int) ([]entities.OutcomeStat, error)
	RevenueBreakdown(ctx context.Context, month string, branchID *int) (*entities.RevenueBreakdown, error)
	BranchName(ctx context.Context, branchID int) (string, error)
}
