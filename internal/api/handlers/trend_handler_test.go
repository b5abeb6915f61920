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
)

func TestTrendHandler_GetAdmissionTrends_DefaultsToDaily(t *testing.T) {
	var capturedPeriod repositories.TrendPeriod
	repo := &stubMetricsRepo{
		admissionTrends: func(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error) {
			capturedPeriod = period
			return []entities.AdmissionTrendPoint{
				{Period: "2026-08-30", TotalAdmissions: 22, EmergencyAdmissions: 8, ScheduledAdmissions: 14},
			}, nil
		},
	}
	handler := NewTrendHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/trends/admissions", nil)
	rec := httptest.NewRecorder()
	handler.GetAdmissionTrends(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, repositories.TrendDaily, capturedPeriod)

	var body struct {
		Period string                        `json:"period"`
		Trends []entities.AdmissionTrendPoint `json:"trends"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "daily", body.Period)
	require.Len(t, body.Trends, 1)
	assert.Equal(t, int64(22), body.Trends[0].TotalAdmissions)
}

func TestTrendHandler_GetAdmissionTrends_InvalidPeriod(t *testing.T) {
	called := false
	repo := &stubMetricsRepo{
		admissionTrends: func(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error) {
			called = true
			return nil, nil
		},
	}
	handler := NewTrendHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/trends/admissions?period=hourly", nil)
	rec := httptest.NewRecorder()
	handler.GetAdmissionTrends(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "period must be daily, weekly or monthly", body["error"])
}

func TestTrendHandler_GetAdmissionTrends_WeeklyPeriod(t *testing.T) {
	var capturedPeriod repositories.TrendPeriod
	repo := &stubMetricsRepo{
		admissionTrends: func(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error) {
			capturedPeriod = period
			return []entities.AdmissionTrendPoint{}, nil
		},
	}
	handler := NewTrendHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/trends/admissions?period=weekly", nil)
	rec := httptest.NewRecorder()
	handler.GetAdmissionTrends(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, repositories.TrendWeekly, capturedPeriod)
}

func TestTrendHandler_GetBedOccupancyTrends(t *testing.T) {
	occ := 74.2
	repo := &stubMetricsRepo{
		bedOccupancyTrends: func(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OccupancyTrendPoint, error) {
			return []entities.OccupancyTrendPoint{{Date: "2026-08-31", AvgOccupancy: &occ}}, nil
		},
	}
	handler := NewTrendHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/trends/bed-occupancy", nil)
	rec := httptest.NewRecorder()
	handler.GetBedOccupancyTrends(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Trends []entities.OccupancyTrendPoint `json:"trends"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Trends, 1)
	require.NotNil(t, body.Trends[0].AvgOccupancy)
	assert.Equal(t, 74.2, *body.Trends[0].AvgOccupancy)
	assert.Nil(t, body.Trends[0].AvgICUOccupied)
}

func TestTrendHandler_GetPeakTimes(t *testing.T) {
	var capturedBranch *int
	repo := &stubMetricsRepo{
		peakTimes: func(ctx context.Context, branchID *int) (*entities.PeakTimes, error) {
			capturedBranch = branchID
			return &entities.PeakTimes{
				PeakHours: []entities.PeakHour{{Hour: 10, AdmissionCount: 140}},
				PeakDays:  []entities.PeakDay{{DayName: "Monday", DayNumber: 1, AdmissionCount: 410}},
			}, nil
		},
	}
	handler := NewTrendHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/peak-hours?branch_id=3", nil)
	rec := httptest.NewRecorder()
	handler.GetPeakTimes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capturedBranch)
	assert.Equal(t, 3, *capturedBranch)

	var body entities.PeakTimes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.PeakHours, 1)
	assert.Equal(t, 10, body.PeakHours[0].Hour)
	require.Len(t, body.PeakDays, 1)
	assert.Equal(t, "Monday", body.PeakDays[0].DayName)
}
