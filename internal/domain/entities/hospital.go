package entities

import "time"

// Branch is a hospital branch. ICUBeds + GeneralBeds always equals TotalBeds.
type Branch struct {
	ID          int    `json:"branch_id"`
	Name        string `json:"branch_name"`
	Location    string `json:"location"`
	TotalBeds   int    `json:"total_beds"`
	ICUBeds     int    `json:"icu_beds"`
	GeneralBeds int    `json:"general_beds"`
}

// Department is a specialty unit within a branch
type Department struct {
	ID        int    `json:"dept_id"`
	Name      string `json:"dept_name"`
	Type      string `json:"dept_type"`
	BranchID  int    `json:"branch_id"`
	TotalBeds int    `json:"total_beds"`
}

// Doctor belongs to a department; specialization mirrors the department type
type Doctor struct {
	ID          int    `json:"doctor_id"`
	Name        string `json:"doctor_name"`
	Specialty   string `json:"specialization"`
	DeptID      int    `json:"dept_id"`
	BranchID    int    `json:"branch_id"`
	WeeklyHours int    `json:"working_hours_per_week"`
}

// Patient is a registered patient
type Patient struct {
	ID            int    `json:"patient_id"`
	Name          string `json:"patient_name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	InsuranceType string `json:"insurance_type"`
	Contact       string `json:"contact_number"`
}

// Procedure is a catalog entry owned by a department
type Procedure struct {
	ID              int     `json:"procedure_id"`
	Name            string  `json:"procedure_name"`
	Type            string  `json:"procedure_type"`
	DeptID          int     `json:"dept_id"`
	BaseCost        float64 `json:"base_cost"`
	AvgDurationMins int     `json:"avg_duration_minutes"`
}

// Admission records a patient stay. DischargeDate is set iff Status is Discharged.
type Admission struct {
	ID                int        `json:"admission_id"`
	PatientID         int        `json:"patient_id"`
	BranchID          int        `json:"branch_id"`
	DeptID            int        `json:"dept_id"`
	DoctorID          int        `json:"doctor_id"`
	AdmissionDate     time.Time  `json:"admission_date"`
	DischargeDate     *time.Time `json:"discharge_date"`
	AdmissionType     string     `json:"admission_type"`
	DiagnosisCategory string     `json:"diagnosis_category"`
	BedType           string     `json:"bed_type"`
	BedNumber         string     `json:"bed_number"`
	Status            string     `json:"status"`
}

// PatientProcedure links an admission to a performed catalog procedure
type PatientProcedure struct {
	ID            int       `json:"pp_id"`
	AdmissionID   int       `json:"admission_id"`
	ProcedureID   int       `json:"procedure_id"`
	ProcedureDate time.Time `json:"procedure_date"`
	DoctorID      int       `json:"doctor_id"`
	DurationMins  int       `json:"duration_minutes"`
	Cost          float64   `json:"cost"`
	Status        string    `json:"status"`
}

// Billing holds the itemized charges for one admission.
// The itemized charges sum to TotalAmount.
type Billing struct {
	ID                int     `json:"billing_id"`
	AdmissionID       int     `json:"admission_id"`
	TotalAmount       float64 `json:"total_amount"`
	RoomCharges       float64 `json:"room_charges"`
	ProcedureCharges  float64 `json:"procedure_charges"`
	MedicineCharges   float64 `json:"medicine_charges"`
	LabCharges        float64 `json:"lab_charges"`
	OtherCharges      float64 `json:"other_charges"`
	Discount          float64 `json:"discount"`
	InsuranceCoverage float64 `json:"insurance_coverage"`
	AmountPaid        float64 `json:"amount_paid"`
	PaymentStatus     string  `json:"payment_status"`
}

// Outcome exists only for discharged admissions
type Outcome struct {
	ID                  int       `json:"outcome_id"`
	AdmissionID         int       `json:"admission_id"`
	OutcomeType         string    `json:"outcome_type"`
	OutcomeDate         time.Time `json:"outcome_date"`
	ReadmissionFlag     bool      `json:"readmission_flag"`
	ReadmissionWithin30 bool      `json:"readmission_within_30days"`
}

// BedOccupancySnapshot is one daily (branch[, department]) occupancy row.
// ICUOccupied/GeneralOccupied are populated on branch-level rows only.
type BedOccupancySnapshot struct {
	ID              int       `json:"record_id"`
	BranchID        int       `json:"branch_id"`
	DeptID          *int      `json:"dept_id"`
	SnapshotDate    time.Time `json:"snapshot_date"`
	SnapshotHour    int       `json:"snapshot_hour"`
	TotalBeds       int       `json:"total_beds"`
	OccupiedBeds    int       `json:"occupied_beds"`
	OccupancyRate   float64   `json:"occupancy_rate"`
	ICUOccupied     *int      `json:"icu_occupied"`
	GeneralOccupied *int      `json:"general_occupied"`
}

// ResourceAlert is an operational alert raised for a branch or department
type ResourceAlert struct {
	ID        int       `json:"alert_id"`
	BranchID  int       `json:"branch_id"`
	DeptID    *int      `json:"dept_id"`
	AlertType string    `json:"alert_type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"alert_message"`
	AlertDate time.Time `json:"alert_date"`
	Resolved  bool      `json:"resolved"`
}
