package entities

// MonthlySummary is the headline section of the monthly report. Mean-based
// fields stay nil when the month had no matching rows so the renderer can
// print "N/A" instead of a misleading 0.00.
type MonthlySummary struct {
	TotalAdmissions     int64    `json:"total_admissions"`
	TotalDischarges     int64    `json:"total_discharges"`
	EmergencyAdmissions int64    `json:"emergency_admissions"`
	AvgLOS              *float64 `json:"avg_los"`
	TotalRevenue        *float64 `json:"total_revenue"`
	AvgCostPerPatient   *float64 `json:"avg_cost_per_patient"`
	TotalProcedures     int64    `json:"total_procedures"`
	Readmissions        int64    `json:"readmissions"`
	ReadmissionRate     float64  `json:"readmission_rate"`
	EmergencyPercentage float64  `json:"emergency_percentage"`
}

// DepartmentBreakdownRow is one department row of the monthly report,
// ordered by revenue descending. Departments without admissions in the
// month are excluded.
type DepartmentBreakdownRow struct {
	DeptName             string   `json:"dept_name"`
	DeptType             string   `json:"dept_type"`
	Admissions           int64    `json:"admissions"`
	Discharges           int64    `json:"discharges"`
	AvgLOS               *float64 `json:"avg_los"`
	Revenue              *float64 `json:"revenue"`
	AvgRevenuePerPatient *float64 `json:"avg_revenue_per_patient"`
	Procedures           int64    `json:"procedures"`
	EmergencyCases       int64    `json:"emergency_cases"`
}

// OccupancyStats aggregates branch-level snapshots for the month
type OccupancyStats struct {
	AvgOccupancy       *float64 `json:"avg_occupancy"`
	MaxOccupancy       *float64 `json:"max_occupancy"`
	MinOccupancy       *float64 `json:"min_occupancy"`
	AvgICUOccupied     *float64 `json:"avg_icu_occupied"`
	AvgGeneralOccupied *float64 `json:"avg_general_occupied"`
}

// DoctorPerformance is one row of the top-20-doctors table
type DoctorPerformance struct {
	DoctorName           string   `json:"doctor_name"`
	DeptName             string   `json:"dept_name"`
	PatientsHandled      int64    `json:"patients_handled"`
	ProceduresPerformed  int64    `json:"procedures_performed"`
	AvgProcedureDuration *float64 `json:"avg_procedure_duration"`
	RevenueGenerated     *float64 `json:"revenue_generated"`
}

// OutcomeStat is one outcome-type row of the monthly outcome table
type OutcomeStat struct {
	OutcomeType      string   `json:"outcome_type"`
	Count            int64    `json:"count"`
	AvgLOSForOutcome *float64 `json:"avg_los_for_outcome"`
}

// RevenueBreakdown itemizes the month's billing totals
type RevenueBreakdown struct {
	RoomCharges       *float64 `json:"room_charges"`
	ProcedureCharges  *float64 `json:"procedure_charges"`
	MedicineCharges   *float64 `json:"medicine_charges"`
	LabCharges        *float64 `json:"lab_charges"`
	OtherCharges      *float64 `json:"other_charges"`
	TotalRevenue      *float64 `json:"total_revenue"`
	TotalDiscount     *float64 `json:"total_discount"`
	InsuranceCoverage *float64 `json:"insurance_coverage"`
	TotalCollected    *float64 `json:"total_collected"`
	CollectionRate    float64  `json:"collection_rate"`
}
