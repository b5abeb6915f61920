package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// stubRepo records the month it was queried with and serves canned sections
type stubRepo struct {
	months     []string
	branchName string
	branchErr  error
}

func (s *stubRepo) MonthlySummary(ctx context.Context, month string, branchID *int) (*entities.MonthlySummary, error) {
	s.months = append(s.months, month)
	return &entities.MonthlySummary{TotalAdmissions: 120}, nil
}

func (s *stubRepo) DepartmentBreakdown(ctx context.Context, month string, branchID *int) ([]entities.DepartmentBreakdownRow, error) {
	return []entities.DepartmentBreakdownRow{{DeptName: "Cardiology", Admissions: 42}}, nil
}

func (s *stubRepo) OccupancyStats(ctx context.Context, month string, branchID *int) (*entities.OccupancyStats, error) {
	return &entities.OccupancyStats{}, nil
}

func (s *stubRepo) DoctorPerformance(ctx context.Context, month string, branchID *int) ([]entities.DoctorPerformance, error) {
	return []entities.DoctorPerformance{}, nil
}

func (s *stubRepo) OutcomeStats(ctx context.Context, month string, branchID *int) ([]entities.OutcomeStat, error) {
	return []entities.OutcomeStat{}, nil
}

func (s *stubRepo) RevenueBreakdown(ctx context.Context, month string, branchID *int) (*entities.RevenueBreakdown, error) {
	return &entities.RevenueBreakdown{}, nil
}

func (s *stubRepo) BranchName(ctx context.Context, branchID int) (string, error) {
	if s.branchErr != nil {
		return "", s.branchErr
	}
	return s.branchName, nil
}

func TestGenerator_Run(t *testing.T) {
	repo := &stubRepo{}
	gen := NewGenerator(repo)

	r, err := gen.Run(context.Background(), 2026, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-03", r.MonthStr)
	assert.Equal(t, "All Branches", r.BranchName)
	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, int64(120), r.Summary.TotalAdmissions)
	require.Len(t, r.Departments, 1)
	assert.Equal(t, []string{"2026-03"}, repo.months)
}

func TestGenerator_Run_WithBranch(t *testing.T) {
	repo := &stubRepo{branchName: "Delhi Metro Medical Center"}
	gen := NewGenerator(repo)

	branchID := 2
	r, err := gen.Run(context.Background(), 2026, 3, &branchID)
	require.NoError(t, err)
	assert.Equal(t, "Delhi Metro Medical Center", r.BranchName)
}

func TestGenerator_Run_UnknownBranch(t *testing.T) {
	repo := &stubRepo{branchErr: apperrors.NewNotFoundError("branch 99 not found")}
	gen := NewGenerator(repo)

	branchID := 99
	_, err := gen.Run(context.Background(), 2026, 3, &branchID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestGenerator_Run_RejectsBadPeriod(t *testing.T) {
	gen := NewGenerator(&stubRepo{})

	for _, tc := range []struct {
		year, month int
	}{
		{2026, 0},
		{2026, 13},
		{1999, 6},
		{2101, 6},
	} {
		_, err := gen.Run(context.Background(), tc.year, tc.month, nil)
		require.Error(t, err, "year=%d month=%d", tc.year, tc.month)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	}
}

func TestReport_FileBase(t *testing.T) {
	r := &Report{Year: 2026, Month: 3}
	assert.Equal(t, "hospital_report_2026_03", r.FileBase())

	branchID := 2
	r.BranchID = &branchID
	assert.Equal(t, "hospital_report_2026_03_branch2", r.FileBase())
}

func TestReport_PeriodLabel(t *testing.T) {
	r := &Report{Year: 2026, Month: 3}
	assert.Equal(t, "March 2026", r.PeriodLabel())
}
