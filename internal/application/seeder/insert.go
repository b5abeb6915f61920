package seeder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/observability"
)

// insertBatchSize keeps multi-row INSERT statements under the parameter limit
const insertBatchSize = 500

// Inserter writes a generated dataset into PostgreSQL. Reference tables are
// committed one at a time; the admission-linked tables (admissions,
// procedures, billing, outcomes) go in a single transaction so partial
// stays never appear.
type Inserter struct {
	client *postgres.Client
	log    *zerolog.Logger
}

// NewInserter creates a new dataset inserter
func NewInserter(client *postgres.Client) *Inserter {
	return &Inserter{
		client: client,
		log:    observability.GetLogger(),
	}
}

// InsertDataset writes every table of the dataset and realigns the id
// sequences afterwards.
func (ins *Inserter) InsertDataset(ctx context.Context, ds *Dataset) error {
	steps := []struct {
		name string
		fn   func(context.Context, *sql.Tx) error
	}{
		{"branches", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertBranches(ctx, tx, ds.Branches)
		}},
		{"departments", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertDepartments(ctx, tx, ds.Departments)
		}},
		{"doctors", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertDoctors(ctx, tx, ds.Doctors)
		}},
		{"patients", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertPatients(ctx, tx, ds.Patients)
		}},
		{"procedures", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertProcedures(ctx, tx, ds.Procedures)
		}},
		{"admissions", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertAdmissionData(ctx, tx, ds)
		}},
		{"bed occupancy", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertOccupancy(ctx, tx, ds.Occupancy)
		}},
		{"resource alerts", func(ctx context.Context, tx *sql.Tx) error {
			return ins.insertAlerts(ctx, tx, ds.Alerts)
		}},
	}

	for _, step := range steps {
		if err := ins.inTx(ctx, step.fn); err != nil {
			return fmt.Errorf("inserting %s: %w", step.name, err)
		}
		ins.log.Info().Str("step", step.name).Msg("seed step committed")
	}

	if err := ins.syncSequences(ctx); err != nil {
		return err
	}

	ins.log.Info().
		Int("branches", len(ds.Branches)).
		Int("departments", len(ds.Departments)).
		Int("doctors", len(ds.Doctors)).
		Int("patients", len(ds.Patients)).
		Int("admissions", len(ds.Admissions)).
		Int("procedures", len(ds.PatientProcedures)).
		Int("occupancy_records", len(ds.Occupancy)).
		Int("alerts", len(ds.Alerts)).
		Msg("seed complete")
	return nil
}

func (ins *Inserter) inTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	tx, err := ins.client.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (ins *Inserter) insertBranches(ctx context.Context, tx *sql.Tx, branches []entities.Branch) error {
	records := make([]interface{}, 0, len(branches))
	for _, b := range branches {
		records = append(records, goqu.Record{
			"branch_id":    b.ID,
			"branch_name":  b.Name,
			"location":     b.Location,
			"total_beds":   b.TotalBeds,
			"icu_beds":     b.ICUBeds,
			"general_beds": b.GeneralBeds,
		})
	}
	return execBatched(ctx, tx, "branches", records)
}

func (ins *Inserter) insertDepartments(ctx context.Context, tx *sql.Tx, departments []entities.Department) error {
	records := make([]interface{}, 0, len(departments))
	for _, d := range departments {
		records = append(records, goqu.Record{
			"dept_id":    d.ID,
			"dept_name":  d.Name,
			"dept_type":  d.Type,
			"branch_id":  d.BranchID,
			"total_beds": d.TotalBeds,
		})
	}
	return execBatched(ctx, tx, "departments", records)
}

func (ins *Inserter) insertDoctors(ctx context.Context, tx *sql.Tx, doctors []entities.Doctor) error {
	records := make([]interface{}, 0, len(doctors))
	for _, d := range doctors {
		records = append(records, goqu.Record{
			"doctor_id":              d.ID,
			"doctor_name":            d.Name,
			"specialization":         d.Specialty,
			"dept_id":                d.DeptID,
			"branch_id":              d.BranchID,
			"working_hours_per_week": d.WeeklyHours,
		})
	}
	return execBatched(ctx, tx, "doctors", records)
}

func (ins *Inserter) insertPatients(ctx context.Context, tx *sql.Tx, patients []entities.Patient) error {
	records := make([]interface{}, 0, len(patients))
	for _, p := range patients {
		records = append(records, goqu.Record{
			"patient_id":     p.ID,
			"patient_name":   p.Name,
			"age":            p.Age,
			"gender":         p.Gender,
			"insurance_type": p.InsuranceType,
			"contact_number": p.Contact,
		})
	}
	return execBatched(ctx, tx, "patients", records)
}

func (ins *Inserter) insertProcedures(ctx context.Context, tx *sql.Tx, procedures []entities.Procedure) error {
	records := make([]interface{}, 0, len(procedures))
	for _, p := range procedures {
		records = append(records, goqu.Record{
			"procedure_id":         p.ID,
			"procedure_name":       p.Name,
			"procedure_type":       p.Type,
			"dept_id":              p.DeptID,
			"base_cost":            p.BaseCost,
			"avg_duration_minutes": p.AvgDurationMins,
		})
	}
	return execBatched(ctx, tx, "procedures", records)
}

func (ins *Inserter) insertAdmissionData(ctx context.Context, tx *sql.Tx, ds *Dataset) error {
	admissions := make([]interface{}, 0, len(ds.Admissions))
	for _, a := range ds.Admissions {
		admissions = append(admissions, goqu.Record{
			"admission_id":       a.ID,
			"patient_id":         a.PatientID,
			"branch_id":          a.BranchID,
			"dept_id":            a.DeptID,
			"doctor_id":          a.DoctorID,
			"admission_date":     a.AdmissionDate,
			"discharge_date":     a.DischargeDate,
			"admission_type":     a.AdmissionType,
			"diagnosis_category": a.DiagnosisCategory,
			"bed_type":           a.BedType,
			"bed_number":         a.BedNumber,
			"status":             a.Status,
		})
	}
	if err := execBatched(ctx, tx, "admissions", admissions); err != nil {
		return err
	}

	procedures := make([]interface{}, 0, len(ds.PatientProcedures))
	for _, p := range ds.PatientProcedures {
		procedures = append(procedures, goqu.Record{
			"pp_id":            p.ID,
			"admission_id":     p.AdmissionID,
			"procedure_id":     p.ProcedureID,
			"procedure_date":   p.ProcedureDate,
			"doctor_id":        p.DoctorID,
			"duration_minutes": p.DurationMins,
			"cost":             p.Cost,
			"status":           p.Status,
		})
	}
	if err := execBatched(ctx, tx, "patient_procedures", procedures); err != nil {
		return err
	}

	billing := make([]interface{}, 0, len(ds.Billing))
	for _, b := range ds.Billing {
		billing = append(billing, goqu.Record{
			"billing_id":         b.ID,
			"admission_id":       b.AdmissionID,
			"total_amount":       b.TotalAmount,
			"room_charges":       b.RoomCharges,
			"procedure_charges":  b.ProcedureCharges,
			"medicine_charges":   b.MedicineCharges,
			"lab_charges":        b.LabCharges,
			"other_charges":      b.OtherCharges,
			"discount":           b.Discount,
			"insurance_coverage": b.InsuranceCoverage,
			"amount_paid":        b.AmountPaid,
			"payment_status":     b.PaymentStatus,
		})
	}
	if err := execBatched(ctx, tx, "billing", billing); err != nil {
		return err
	}

	outcomes := make([]interface{}, 0, len(ds.Outcomes))
	for _, o := range ds.Outcomes {
		outcomes = append(outcomes, goqu.Record{
			"outcome_id":                o.ID,
			"admission_id":              o.AdmissionID,
			"outcome_type":              o.OutcomeType,
			"outcome_date":              o.OutcomeDate,
			"readmission_flag":          o.ReadmissionFlag,
			"readmission_within_30days": o.ReadmissionWithin30,
		})
	}
	return execBatched(ctx, tx, "outcomes", outcomes)
}

func (ins *Inserter) insertOccupancy(ctx context.Context, tx *sql.Tx, snapshots []entities.BedOccupancySnapshot) error {
	records := make([]interface{}, 0, len(snapshots))
	for _, s := range snapshots {
		records = append(records, goqu.Record{
			"record_id":        s.ID,
			"branch_id":        s.BranchID,
			"dept_id":          s.DeptID,
			"snapshot_date":    s.SnapshotDate,
			"snapshot_hour":    s.SnapshotHour,
			"total_beds":       s.TotalBeds,
			"occupied_beds":    s.OccupiedBeds,
			"occupancy_rate":   s.OccupancyRate,
			"icu_occupied":     s.ICUOccupied,
			"general_occupied": s.GeneralOccupied,
		})
	}
	return execBatched(ctx, tx, "bed_occupancy_daily", records)
}

func (ins *Inserter) insertAlerts(ctx context.Context, tx *sql.Tx, alerts []entities.ResourceAlert) error {
	records := make([]interface{}, 0, len(alerts))
	for _, a := range alerts {
		records = append(records, goqu.Record{
			"alert_id":      a.ID,
			"branch_id":     a.BranchID,
			"dept_id":       a.DeptID,
			"alert_type":    a.AlertType,
			"severity":      a.Severity,
			"alert_message": a.Message,
			"alert_date":    a.AlertDate,
			"resolved":      a.Resolved,
		})
	}
	return execBatched(ctx, tx, "resource_alerts", records)
}

// execBatched inserts the records in chunks of insertBatchSize
func execBatched(ctx context.Context, tx *sql.Tx, table string, records []interface{}) error {
	dialect := goqu.Dialect("postgres")
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		query, args, err := dialect.Insert(table).Rows(records[start:end]...).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

// syncSequences realigns the serial sequences with the explicit ids
func (ins *Inserter) syncSequences(ctx context.Context) error {
	sequences := map[string]string{
		"branches":            "branch_id",
		"departments":         "dept_id",
		"doctors":             "doctor_id",
		"patients":            "patient_id",
		"procedures":          "procedure_id",
		"admissions":          "admission_id",
		"patient_procedures":  "pp_id",
		"billing":             "billing_id",
		"outcomes":            "outcome_id",
		"bed_occupancy_daily": "record_id",
		"resource_alerts":     "alert_id",
	}
	for table, column := range sequences {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', '%s'), (SELECT COALESCE(MAX(%s), 1) FROM %s))",
			table, column, column, table)
		if _, err := ins.client.DB().ExecContext(ctx, query); err != nil {
			return fmt.Errorf("sync sequence for %s: %w", table, err)
		}
	}
	return nil
}
