package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenhealth/hospital-analytics/internal/adapters/database"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

func newReportAdapter(t *testing.T) (*database.ReportAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewReportAdapter(postgres.NewClientFromDB(db)), mock
}

func TestReportAdapter_MonthlySummary(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`total_admissions`).
		WithArgs("2026-03").
		WillReturnRows(sqlmock.NewRows([]string{
			"total_admissions", "total_discharges", "emergency_admissions", "avg_los",
			"total_revenue", "avg_cost_per_patient", "total_procedures", "readmissions",
		}).AddRow(100, 80, 35, 4.321, 4500000.0, 45000.0, 210, 8))

	summary, err := adapter.MonthlySummary(context.Background(), "2026-03", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(100), summary.TotalAdmissions)
	assert.Equal(t, int64(80), summary.TotalDischarges)
	require.NotNil(t, summary.AvgLOS)
	assert.Equal(t, 4.321, *summary.AvgLOS)
	// 8 readmissions over 80 discharges
	assert.Equal(t, 10.0, summary.ReadmissionRate)
	// 35 emergency of 100 admissions
	assert.Equal(t, 35.0, summary.EmergencyPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportAdapter_MonthlySummary_EmptyMonth(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`total_admissions`).
		WithArgs("2031-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"total_admissions", "total_discharges", "emergency_admissions", "avg_los",
			"total_revenue", "avg_cost_per_patient", "total_procedures", "readmissions",
		}).AddRow(0, 0, 0, nil, nil, nil, 0, 0))

	summary, err := adapter.MonthlySummary(context.Background(), "2031-01", nil)
	require.NoError(t, err)

	// Means stay nil for an empty month; derived rates fall back to 0
	assert.Nil(t, summary.AvgLOS)
	assert.Nil(t, summary.TotalRevenue)
	assert.Nil(t, summary.AvgCostPerPatient)
	assert.Zero(t, summary.ReadmissionRate)
	assert.Zero(t, summary.EmergencyPercentage)
}

func TestReportAdapter_DepartmentBreakdown(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`departments`).
		WithArgs("2026-03").
		WillReturnRows(sqlmock.NewRows([]string{
			"dept_name", "dept_type", "admissions", "discharges", "avg_los",
			"revenue", "avg_revenue_per_patient", "procedures", "emergency_cases",
		}).
			AddRow("Cardiology", "Cardiology", 42, 38, 4.5, 1890000.0, 45000.0, 77, 15).
			AddRow("Pediatrics", "Pediatrics", 30, 28, 2.8, nil, nil, 41, 9))

	rows, err := adapter.DepartmentBreakdown(context.Background(), "2026-03", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Cardiology", rows[0].DeptName)
	assert.Equal(t, int64(42), rows[0].Admissions)
	require.NotNil(t, rows[0].Revenue)
	assert.Equal(t, 1890000.0, *rows[0].Revenue)

	assert.Nil(t, rows[1].Revenue)
	assert.Nil(t, rows[1].AvgRevenuePerPatient)
}

func TestReportAdapter_OccupancyStats(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`bed_occupancy_daily`).
		WithArgs("2026-03").
		WillReturnRows(sqlmock.NewRows([]string{
			"avg_occupancy", "max_occupancy", "min_occupancy", "avg_icu_occupied", "avg_general_occupied",
		}).AddRow(76.4, 94.1, 58.2, 31.5, 140.8))

	stats, err := adapter.OccupancyStats(context.Background(), "2026-03", nil)
	require.NoError(t, err)
	require.NotNil(t, stats.AvgOccupancy)
	assert.Equal(t, 76.4, *stats.AvgOccupancy)
	require.NotNil(t, stats.MaxOccupancy)
	assert.Equal(t, 94.1, *stats.MaxOccupancy)
}

func TestReportAdapter_DoctorPerformance(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`doctors`).
		WillReturnRows(sqlmock.NewRows([]string{
			"doctor_name", "dept_name", "patients_handled", "procedures_performed",
			"avg_procedure_duration", "revenue_generated",
		}).
			AddRow("Dr. Sunita Reddy", "Orthopedics", 24, 31, 95.5, 1250000.0).
			AddRow("Dr. Vikram Singh", "Neurology", 18, 12, nil, nil))

	doctors, err := adapter.DoctorPerformance(context.Background(), "2026-03", nil)
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Dr. Sunita Reddy", doctors[0].DoctorName)
	assert.Equal(t, int64(24), doctors[0].PatientsHandled)
	assert.Nil(t, doctors[1].AvgProcedureDuration)
	assert.Nil(t, doctors[1].RevenueGenerated)
}

func TestReportAdapter_OutcomeStats(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`outcome_type`).
		WithArgs("2026-03").
		WillReturnRows(sqlmock.NewRows([]string{"outcome_type", "count", "avg_los_for_outcome"}).
			AddRow("Recovered", 70, 3.9).
			AddRow("Deceased", 2, nil))

	stats, err := adapter.OutcomeStats(context.Background(), "2026-03", nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Recovered", stats[0].OutcomeType)
	assert.Equal(t, int64(70), stats[0].Count)
	assert.Nil(t, stats[1].AvgLOSForOutcome)
}

func TestReportAdapter_RevenueBreakdown(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`billing`).
		WithArgs("2026-03").
		WillReturnRows(sqlmock.NewRows([]string{
			"room_charges", "procedure_charges", "medicine_charges", "lab_charges",
			"other_charges", "total_revenue", "total_discount", "insurance_coverage", "total_collected",
		}).AddRow(500000.0, 1200000.0, 300000.0, 150000.0, 50000.0, 2000000.0, 100000.0, 900000.0, 1800000.0))

	breakdown, err := adapter.RevenueBreakdown(context.Background(), "2026-03", nil)
	require.NoError(t, err)
	require.NotNil(t, breakdown.TotalRevenue)
	assert.Equal(t, 2000000.0, *breakdown.TotalRevenue)
	assert.Equal(t, 90.0, breakdown.CollectionRate)
}

func TestReportAdapter_RevenueBreakdown_NothingBilled(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`billing`).
		WithArgs("2031-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"room_charges", "procedure_charges", "medicine_charges", "lab_charges",
			"other_charges", "total_revenue", "total_discount", "insurance_coverage", "total_collected",
		}).AddRow(nil, nil, nil, nil, nil, nil, nil, nil, nil))

	breakdown, err := adapter.RevenueBreakdown(context.Background(), "2031-01", nil)
	require.NoError(t, err)
	assert.Nil(t, breakdown.TotalRevenue)
	assert.Zero(t, breakdown.CollectionRate)
}

func TestReportAdapter_BranchName(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`branch_name`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"branch_name"}).AddRow("Delhi Metro Medical Center"))

	name, err := adapter.BranchName(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Delhi Metro Medical Center", name)
}

func TestReportAdapter_BranchName_NotFound(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`branch_name`).
		WillReturnRows(sqlmock.NewRows([]string{"branch_name"}))

	_, err := adapter.BranchName(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestReportAdapter_MonthlySummary_Unavailable(t *testing.T) {
	adapter, mock := newReportAdapter(t)

	mock.ExpectQuery(`total_admissions`).WillReturnError(errors.New("dial tcp: connection refused"))

	_, err := adapter.MonthlySummary(context.Background(), "2026-03", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, apperrors.TypeOf(err))
}
