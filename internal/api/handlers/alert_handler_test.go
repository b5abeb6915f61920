package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
)

func TestAlertHandler_GetActiveAlerts(t *testing.T) {
	dept := "Cardiology"
	repo := &stubMetricsRepo{
		activeAlerts: func(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error) {
			return []entities.ActiveAlert{
				{
					AlertID:    7,
					AlertType:  "Bed_Shortage",
					Severity:   "Critical",
					Message:    "ICU beds running low - only 2 available",
					AlertDate:  time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
					BranchName: "Mumbai Central Hospital",
				},
				{
					AlertID:    3,
					AlertType:  "High_Occupancy",
					Severity:   "Medium",
					Message:    "Department occupancy exceeds 90%",
					AlertDate:  time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC),
					BranchName: "Delhi Metro Medical Center",
					DeptName:   &dept,
				},
			}, nil
		},
	}
	handler := NewAlertHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/active", nil)
	rec := httptest.NewRecorder()
	handler.GetActiveAlerts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Alerts []entities.ActiveAlert `json:"alerts"`
		Count  int                    `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Critical", body.Alerts[0].Severity)
	assert.Nil(t, body.Alerts[0].DeptName)
	require.NotNil(t, body.Alerts[1].DeptName)
	assert.Equal(t, "Cardiology", *body.Alerts[1].DeptName)
}

func TestAlertHandler_GetActiveAlerts_BranchFilter(t *testing.T) {
	var capturedBranch *int
	repo := &stubMetricsRepo{
		activeAlerts: func(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error) {
			capturedBranch = branchID
			return []entities.ActiveAlert{}, nil
		},
	}
	handler := NewAlertHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/active?branch_id=2", nil)
	rec := httptest.NewRecorder()
	handler.GetActiveAlerts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capturedBranch)
	assert.Equal(t, 2, *capturedBranch)
}
