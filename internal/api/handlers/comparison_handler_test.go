package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

func TestComparisonHandler_GetDepartmentComparison(t *testing.T) {
	alos := 4.25
	repo := &stubMetricsRepo{
		departmentCompare: func(ctx context.Context, branchID *int) ([]entities.DepartmentComparison, error) {
			return []entities.DepartmentComparison{
				{DeptName: "Cardiology", TotalAdmissions: 40, AvgLOS: &alos},
				{DeptName: "Oncology"},
			}, nil
		},
	}
	handler := NewComparisonHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/departments/comparison", nil)
	rec := httptest.NewRecorder()
	handler.GetDepartmentComparison(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Departments []entities.DepartmentComparison `json:"departments"`
		Count       int                             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Cardiology", body.Departments[0].DeptName)
	assert.Nil(t, body.Departments[1].AvgLOS)
}

func TestComparisonHandler_GetBranchComparison(t *testing.T) {
	repo := &stubMetricsRepo{
		branchCompare: func(ctx context.Context) ([]entities.BranchComparison, error) {
			return []entities.BranchComparison{
				{BranchName: "Mumbai Central Hospital", TotalBeds: 350, TotalAdmissions: 900},
			}, nil
		},
	}
	handler := NewComparisonHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/branches/comparison", nil)
	rec := httptest.NewRecorder()
	handler.GetBranchComparison(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Branches []entities.BranchComparison `json:"branches"`
		Count    int                         `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, int64(350), body.Branches[0].TotalBeds)
}

func TestComparisonHandler_GetDoctorUtilization(t *testing.T) {
	var captured repositories.MetricsFilter
	repo := &stubMetricsRepo{
		doctorUtilization: func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.DoctorUtilization, error) {
			captured = filter
			return []entities.DoctorUtilization{
				{DoctorName: "Dr. Rajesh Kumar", DeptName: "Cardiology", UtilizationPercent: 64.5},
			}, nil
		},
	}
	handler := NewComparisonHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/doctor-utilization?dept_id=7", nil)
	rec := httptest.NewRecorder()
	handler.GetDoctorUtilization(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.DeptID)
	assert.Equal(t, 7, *captured.DeptID)

	var body struct {
		Doctors []entities.DoctorUtilization `json:"doctors"`
		Count   int                          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 64.5, body.Doctors[0].UtilizationPercent)
}

func TestComparisonHandler_GetDoctorUtilization_InvalidDeptID(t *testing.T) {
	handler := NewComparisonHandler(&stubMetricsRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/doctor-utilization?dept_id=cardio", nil)
	rec := httptest.NewRecorder()
	handler.GetDoctorUtilization(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComparisonHandler_GetOutcomesSummary(t *testing.T) {
	repo := &stubMetricsRepo{
		outcomesSummary: func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OutcomeCount, error) {
			return []entities.OutcomeCount{
				{OutcomeType: "Recovered", Count: 650},
				{OutcomeType: "Improved", Count: 250},
			}, nil
		},
	}
	handler := NewComparisonHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/outcomes/summary", nil)
	rec := httptest.NewRecorder()
	handler.GetOutcomesSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Outcomes []entities.OutcomeCount `json:"outcomes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Outcomes, 2)
	assert.Equal(t, "Recovered", body.Outcomes[0].OutcomeType)
}

func TestComparisonHandler_GetBranchComparison_DatabaseDown(t *testing.T) {
	repo := &stubMetricsRepo{
		branchCompare: func(ctx context.Context) ([]entities.BranchComparison, error) {
			return nil, apperrors.NewUnavailableError("branch comparison query failed", context.DeadlineExceeded)
		},
	}
	handler := NewComparisonHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/branches/comparison", nil)
	rec := httptest.NewRecorder()
	handler.GetBranchComparison(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
