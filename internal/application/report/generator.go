package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/observability"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// Report is one fully assembled monthly report
type Report struct {
	RunID       string
	Year        int
	Month       int
	MonthStr    string
	BranchID    *int
	BranchName  string
	GeneratedAt time.Time

	Summary     *entities.MonthlySummary
	Occupancy   *entities.OccupancyStats
	Departments []entities.DepartmentBreakdownRow
	Revenue     *entities.RevenueBreakdown
	Outcomes    []entities.OutcomeStat
	TopDoctors  []entities.DoctorPerformance
}

// Generator assembles monthly reports from the report repository
type Generator struct {
	repo repositories.ReportRepository
	log  *zerolog.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(repo repositories.ReportRepository) *Generator {
	return &Generator{
		repo: repo,
		log:  observability.GetLogger(),
	}
}

// Run gathers every section of the report for the given month
func (g *Generator) Run(ctx context.Context, year, month int, branchID *int) (*Report, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apperrors.NewValidationError("year is out of range")
	}

	r := &Report{
		RunID:       uuid.NewString(),
		Year:        year,
		Month:       month,
		MonthStr:    fmt.Sprintf("%d-%02d", year, month),
		BranchID:    branchID,
		BranchName:  "All Branches",
		GeneratedAt: time.Now(),
	}

	g.log.Info().
		Str("run_id", r.RunID).
		Str("month", r.MonthStr).
		Msg("generating monthly report")

	if branchID != nil {
		name, err := g.repo.BranchName(ctx, *branchID)
		if err != nil {
			return nil, err
		}
		r.BranchName = name
	}

	var err error
	if r.Summary, err = g.repo.MonthlySummary(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}
	if r.Occupancy, err = g.repo.OccupancyStats(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}
	if r.Departments, err = g.repo.DepartmentBreakdown(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}
	if r.Revenue, err = g.repo.RevenueBreakdown(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}
	if r.Outcomes, err = g.repo.OutcomeStats(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}
	if r.TopDoctors, err = g.repo.DoctorPerformance(ctx, r.MonthStr, branchID); err != nil {
		return nil, err
	}

	g.log.Info().
		Str("run_id", r.RunID).
		Int("departments", len(r.Departments)).
		Int("doctors", len(r.TopDoctors)).
		Msg("monthly report assembled")
	return r, nil
}

// FileBase is the stem shared by every exported file for this report
func (r *Report) FileBase() string {
	base := fmt.Sprintf("hospital_report_%d_%02d", r.Year, r.Month)
	if r.BranchID != nil {
		base += fmt.Sprintf("_branch%d", *r.BranchID)
	}
	return base
}

// PeriodLabel is the human-readable month, e.g. "March 2026"
func (r *Report) PeriodLabel() string {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
