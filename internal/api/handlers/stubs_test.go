package handlers

import (
	"context"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
)

// stubMetricsRepo lets each test override just the methods it exercises
type stubMetricsRepo struct {
	kpiSummary         func(ctx context.Context, filter repositories.MetricsFilter) (*entities.KPISummary, error)
	admissionTrends    func(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error)
	bedOccupancyTrends func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OccupancyTrendPoint, error)
	departmentCompare  func(ctx context.Context, branchID *int) ([]entities.DepartmentComparison, error)
	branchCompare      func(ctx context.Context) ([]entities.BranchComparison, error)
	doctorUtilization  func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.DoctorUtilization, error)
	outcomesSummary    func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OutcomeCount, error)
	activeAlerts       func(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error)
	peakTimes          func(ctx context.Context, branchID *int) (*entities.PeakTimes, error)
}

var _ repositories.MetricsRepository = (*stubMetricsRepo)(nil)

func (s *stubMetricsRepo) KPISummary(ctx context.Context, filter repositories.MetricsFilter) (*entities.KPISummary, error) {
	if s.kpiSummary != nil {
		return s.kpiSummary(ctx, filter)
	}
	return &entities.KPISummary{}, nil
}

func (s *stubMetricsRepo) AdmissionTrends(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error) {
	if s.admissionTrends != nil {
		return s.admissionTrends(ctx, period, filter)
	}
	return []entities.AdmissionTrendPoint{}, nil
}

func (s *stubMetricsRepo) BedOccupancyTrends(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OccupancyTrendPoint, error) {
	if s.bedOccupancyTrends != nil {
		return s.bedOccupancyTrends(ctx, filter)
	}
	return []entities.OccupancyTrendPoint{}, nil
}

func (s *stubMetricsRepo) DepartmentComparison(ctx context.Context, branchID *int) ([]entities.DepartmentComparison, error) {
	if s.departmentCompare != nil {
		return s.departmentCompare(ctx, branchID)
	}
	return []entities.DepartmentComparison{}, nil
}

func (s *stubMetricsRepo) BranchComparison(ctx context.Context) ([]entities.BranchComparison, error) {
	if s.branchCompare != nil {
		return s.branchCompare(ctx)
	}
	return []entities.BranchComparison{}, nil
}

func (s *stubMetricsRepo) DoctorUtilization(ctx context.Context, filter repositories.MetricsFilter) ([]entities.DoctorUtilization, error) {
	if s.doctorUtilization != nil {
		return s.doctorUtilization(ctx, filter)
	}
	return []entities.DoctorUtilization{}, nil
}

func (s *stubMetricsRepo) OutcomesSummary(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OutcomeCount, error) {
	if s.outcomesSummary != nil {
		return s.outcomesSummary(ctx, filter)
	}
	return []entities.OutcomeCount{}, nil
}

func (s *stubMetricsRepo) ActiveAlerts(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error) {
	if s.activeAlerts != nil {
		return s.activeAlerts(ctx, branchID)
	}
	return []entities.ActiveAlert{}, nil
}

func (s *stubMetricsRepo) PeakTimes(ctx context.Context, branchID *int) (*entities.PeakTimes, error) {
	if s.peakTimes != nil {
		return s.peakTimes(ctx, branchID)
	}
	return &entities.PeakTimes{}, nil
}

type stubReportRepo struct {
	monthlySummary      func(ctx context.Context, month string, branchID *int) (*entities.MonthlySummary, error)
	departmentBreakdown func(ctx context.Context, month string, branchID *int) ([]entities.DepartmentBreakdownRow, error)
	occupancyStats      func(ctx context.Context, month string, branchID *int) (*entities.OccupancyStats, error)
	doctorPerformance   func(ctx context.Context, month string, branchID *int) ([]entities.DoctorPerformance, error)
	outcomeStats        func(ctx context.Context, month string, branchID *int) ([]entities.OutcomeStat, error)
	revenueBreakdown    func(ctx context.Context, month string, branchID *int) (*entities.RevenueBreakdown, error)
	branchName          func(ctx context.Context, branchID int) (string, error)
}

var _ repositories.ReportRepository = (*stubReportRepo)(nil)

func (s *stubReportRepo) MonthlySummary(ctx context.Context, month string, branchID *int) (*entities.MonthlySummary, error) {
	if s.monthlySummary != nil {
		return s.monthlySummary(ctx, month, branchID)
	}
	return &entities.MonthlySummary{}, nil
}

func (s *stubReportRepo) DepartmentBreakdown(ctx context.Context, month string, branchID *int) ([]entities.DepartmentBreakdownRow, error) {
	if s.departmentBreakdown != nil {
		return s.departmentBreakdown(ctx, month, branchID)
	}
	return []entities.DepartmentBreakdownRow{}, nil
}

func (s *stubReportRepo) OccupancyStats(ctx context.Context, month string, branchID *int) (*entities.OccupancyStats, error) {
	if s.occupancyStats != nil {
		return s.occupancyStats(ctx, month, branchID)
	}
	return &entities.OccupancyStats{}, nil
}

func (s *stubReportRepo) DoctorPerformance(ctx context.Context, month string, branchID *int) ([]entities.DoctorPerformance, error) {
	if s.doctorPerformance != nil {
		return s.doctorPerformance(ctx, month, branchID)
	}
	return []entities.DoctorPerformance{}, nil
}

func (s *stubReportRepo) OutcomeStats(ctx context.Context, month string, branchID *int) ([]entities.OutcomeStat, error) {
	if s.outcomeStats != nil {
		return s.outcomeStats(ctx, month, branchID)
	}
	return []entities.OutcomeStat{}, nil
}

func (s *stubReportRepo) RevenueBreakdown(ctx context.Context, month string, branchID *int) (*entities.RevenueBreakdown, error) {
	if s.revenueBreakdown != nil {
		return s.revenueBreakdown(ctx, month, branchID)
	}
	return &entities.RevenueBreakdown{}, nil
}

func (s *stubReportRepo) BranchName(ctx context.Context, branchID int) (string, error) {
	if s.branchName != nil {
		return s.branchName(ctx, branchID)
	}
	return "", nil
}

type stubCatalogRepo struct {
	filterOptions func(ctx context.Context) (*entities.FilterOptions, error)
}

var _ repositories.CatalogRepository = (*stubCatalogRepo)(nil)

func (s *stubCatalogRepo) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	if s.filterOptions != nil {
		return s.filterOptions(ctx)
	}
	return &entities.FilterOptions{}, nil
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}
