package entities

import "time"

// KPISummary is the dashboard headline aggregate. Null aggregates are
// coerced to 0 here, matching the dashboard contract; the monthly report
// keeps nulls (see MonthlySummary).
type KPISummary struct {
	ALOS              float64 `json:"alos"`
	BedOccupancyRate  float64 `json:"bed_occupancy_rate"`
	TotalAdmissions   int64   `json:"total_admissions"`
	TotalDischarges   int64   `json:"total_discharges"`
	ActivePatients    int64   `json:"active_patients"`
	ReadmissionRate   float64 `json:"readmission_rate"`
	ProcedureVolume   int64   `json:"procedure_volume"`
	EmergencyCases    int64   `json:"emergency_cases"`
	ScheduledCases    int64   `json:"scheduled_cases"`
	AvgCostPerPatient float64 `json:"avg_cost_per_patient"`
}

// AdmissionTrendPoint is one bucket of the trailing-90-day admission trend
type AdmissionTrendPoint struct {
	Period              string `json:"period"`
	TotalAdmissions     int64  `json:"total_admissions"`
	EmergencyAdmissions int64  `json:"emergency_admissions"`
	ScheduledAdmissions int64  `json:"scheduled_admissions"`
}

// OccupancyTrendPoint is one day of the trailing-30-day occupancy trend
type OccupancyTrendPoint struct {
	Date               string   `json:"date"`
	AvgOccupancy       *float64 `json:"avg_occupancy"`
	AvgICUOccupied     *float64 `json:"avg_icu_occupied"`
	AvgGeneralOccupied *float64 `json:"avg_general_occupied"`
}

// DepartmentComparison is one department row of the cross-department view.
// Departments with no admissions still appear, with nil means.
type DepartmentComparison struct {
	DeptName        string   `json:"dept_name"`
	TotalAdmissions int64    `json:"total_admissions"`
	AvgLOS          *float64 `json:"avg_los"`
	TotalProcedures int64    `json:"total_procedures"`
	EmergencyCases  int64    `json:"emergency_cases"`
	AvgCost         *float64 `json:"avg_cost"`
}

// BranchComparison is one branch row of the cross-branch view
type BranchComparison struct {
	BranchName           string   `json:"branch_name"`
	TotalBeds            int64    `json:"total_beds"`
	TotalAdmissions      int64    `json:"total_admissions"`
	AvgLOS               *float64 `json:"avg_los"`
	AvgOccupancy         *float64 `json:"avg_occupancy"`
	TotalRevenue         *float64 `json:"total_revenue"`
	AvgRevenuePerPatient *float64 `json:"avg_revenue_per_patient"`
}

// DoctorUtilization estimates trailing-30-day doctor load. The utilization
// percentage is a heuristic (patients x 0.5h + procedures x 1.5h against
// weekly hours), clamped at 100.
type DoctorUtilization struct {
	DoctorName           string   `json:"doctor_name"`
	DeptName             string   `json:"dept_name"`
	WeeklyHours          int      `json:"working_hours_per_week"`
	PatientsHandled      int64    `json:"patients_handled"`
	ProceduresPerformed  int64    `json:"procedures_performed"`
	AvgProcedureDuration *float64 `json:"avg_procedure_duration"`
	UtilizationPercent   float64  `json:"utilization_percentage"`
}

// OutcomeCount is a single outcome-type bucket
type OutcomeCount struct {
	OutcomeType string `json:"outcome_type"`
	Count       int64  `json:"count"`
}

// ActiveAlert is an unresolved alert joined with branch/department names
type ActiveAlert struct {
	AlertID    int64     `json:"alert_id"`
	AlertType  string    `json:"alert_type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"alert_message"`
	AlertDate  time.Time `json:"alert_date"`
	BranchName string    `json:"branch_name"`
	DeptName   *string   `json:"dept_name"`
}

// PeakHour is one hour-of-day admission bucket
type PeakHour struct {
	Hour           int   `json:"hour"`
	AdmissionCount int64 `json:"admission_count"`
}

// PeakDay is one day-of-week admission bucket
type PeakDay struct {
	DayName        string `json:"day_name"`
	DayNumber      int    `json:"day_number"`
	AdmissionCount int64  `json:"admission_count"`
}

// PeakTimes combines the two staffing views
type PeakTimes struct {
	PeakHours []PeakHour `json:"peak_hours"`
	PeakDays  []PeakDay  `json:"peak_days"`
}

// BranchOption and DepartmentOption feed the dashboard filter dropdowns
type BranchOption struct {
	BranchID   int    `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Location   string `json:"location"`
}

type DepartmentOption struct {
	DeptID   int    `json:"dept_id"`
	DeptName string `json:"dept_name"`
	DeptType string `json:"dept_type"`
	BranchID int    `json:"branch_id"`
}

// FilterOptions lists every value the dashboard can filter on
type FilterOptions struct {
	Branches       []BranchOption     `json:"branches"`
	Departments    []DepartmentOption `json:"departments"`
	Diagnoses      []string           `json:"diagnoses"`
	InsuranceTypes []string           `json:"insurance_types"`
}
