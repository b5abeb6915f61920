package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// closedLOSDaysExpr measures length of stay for closed admissions only,
// so open stays never skew monthly report means.
const closedLOSDaysExpr = "EXTRACT(EPOCH FROM (a.discharge_date - a.admission_date)) / 86400.0"

// ReportAdapter implements ReportRepository over PostgreSQL
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ReportRepository = (*ReportAdapter)(nil)

// NewReportAdapter creates a new report adapter
func NewReportAdapter(client *postgres.Client) *ReportAdapter {
	return &ReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// monthPredicates scopes admissions to one calendar month and optional branch
func monthPredicates(month string, branchID *int) []goqu.Expression {
	exprs := []goqu.Expression{goqu.L("to_char(a.admission_date, 'YYYY-MM') = ?", month)}
	if branchID != nil {
		exprs = append(exprs, goqu.Ex{"a.branch_id": *branchID})
	}
	return exprs
}

// MonthlySummary computes the headline figures for the month. Mean-based
// fields stay nil when no rows matched; the derived rates fall back to 0 on
// a zero denominator.
func (r *ReportAdapter) MonthlySummary(ctx context.Context, month string, branchID *int) (*entities.MonthlySummary, error) {
	query, args, err := r.db.From(goqu.T("admissions").As("a")).
		LeftJoin(goqu.T("billing").As("b"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("b.admission_id")})).
		LeftJoin(goqu.T("patient_procedures").As("pp"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("pp.admission_id")})).
		LeftJoin(goqu.T("outcomes").As("o"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("o.admission_id")})).
		Select(
			goqu.L("COUNT(DISTINCT a.admission_id)").As("total_admissions"),
			goqu.L("COUNT(DISTINCT CASE WHEN a.status = 'Discharged' THEN a.admission_id END)").As("total_discharges"),
			goqu.L("COUNT(DISTINCT CASE WHEN a.admission_type = 'Emergency' THEN a.admission_id END)").As("emergency_admissions"),
			goqu.L("AVG("+losDaysExpr+")").As("avg_los"),
			goqu.L("SUM(b.total_amount)").As("total_revenue"),
			goqu.L("AVG(b.total_amount)").As("avg_cost_per_patient"),
			goqu.L("COUNT(DISTINCT pp.procedure_id)").As("total_procedures"),
			goqu.L("COUNT(DISTINCT CASE WHEN o.readmission_within_30days THEN a.admission_id END)").As("readmissions"),
		).
		Where(monthPredicates(month, branchID)...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build monthly summary query", err)
	}

	summary := &entities.MonthlySummary{}
	var avgLOS, revenue, avgCost sql.NullFloat64
	err = r.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalAdmissions,
		&summary.TotalDischarges,
		&summary.EmergencyAdmissions,
		&avgLOS,
		&revenue,
		&avgCost,
		&summary.TotalProcedures,
		&summary.Readmissions,
	)
	if err != nil {
		return nil, apperrors.NewUnavailableError("monthly summary query failed", err)
	}
	summary.AvgLOS = nullFloat(avgLOS)
	summary.TotalRevenue = nullFloat(revenue)
	summary.AvgCostPerPatient = nullFloat(avgCost)
	if summary.TotalDischarges > 0 {
		summary.ReadmissionRate = round2(float64(summary.Readmissions) / float64(summary.TotalDischarges) * 100)
	}
	if summary.TotalAdmissions > 0 {
		summary.EmergencyPercentage = round2(float64(summary.EmergencyAdmissions) / float64(summary.TotalAdmissions) * 100)
	}
	return summary, nil
}

// DepartmentBreakdown lists per-department activity for the month, revenue
// descending. Departments without admissions in the month are dropped.
func (r *ReportAdapter) DepartmentBreakdown(ctx context.Context, month string, branchID *int) ([]entities.DepartmentBreakdownRow, error) {
	preds := []goqu.Expression{goqu.L("to_char(a.admission_date, 'YYYY-MM') = ?", month)}
	if branchID != nil {
		preds = append(preds, goqu.Ex{"d.branch_id": *branchID})
	}

	query, args, err := r.db.From(goqu.T("departments").As("d")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"d.dept_id": goqu.I("a.dept_id")})).
		LeftJoin(goqu.T("billing").As("b"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("b.admission_id")})).
		LeftJoin(goqu.T("patient_procedures").As("pp"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("pp.admission_id")})).
		Select(
			goqu.I("d.dept_name"),
			goqu.I("d.dept_type"),
			goqu.L("COUNT(DISTINCT a.admission_id)").As("admissions"),
			goqu.L("COUNT(DISTINCT CASE WHEN a.status = 'Discharged' THEN a.admission_id END)").As("discharges"),
			goqu.L("AVG("+losDaysExpr+")").As("avg_los"),
			goqu.L("SUM(b.total_amount)").As("revenue"),
			goqu.L("AVG(b.total_amount)").As("avg_revenue_per_patient"),
			goqu.L("COUNT(DISTINCT pp.procedure_id)").As("procedures"),
			goqu.L("COUNT(DISTINCT CASE WHEN a.admission_type = 'Emergency' THEN a.admission_id END)").As("emergency_cases"),
		).
		Where(preds...).
		GroupBy(goqu.I("d.dept_id"), goqu.I("d.dept_name"), goqu.I("d.dept_type")).
		Having(goqu.L("COUNT(DISTINCT a.admission_id) > 0")).
		Order(goqu.C("revenue").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build department breakdown query", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("department breakdown query failed", err)
	}
	defer rows.Close()

	results := []entities.DepartmentBreakdownRow{}
	for rows.Next() {
		var row entities.DepartmentBreakdownRow
		var avgLOS, revenue, avgRevenue sql.NullFloat64
		if err := rows.Scan(&row.DeptName, &row.DeptType, &row.Admissions, &row.Discharges, &avgLOS, &revenue, &avgRevenue, &row.Procedures, &row.EmergencyCases); err != nil {
			return nil, apperrors.NewInternalError("failed to scan department breakdown row", err)
		}
		row.AvgLOS = nullFloat(avgLOS)
		row.Revenue = nullFloat(revenue)
		row.AvgRevenuePerPatient = nullFloat(avgRevenue)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating department breakdown", err)
	}
	return results, nil
}

// OccupancyStats aggregates branch-level occupancy snapshots for the month.
// Department rows (dept_id set) are excluded so branch figures are not
// double counted.
func (r *ReportAdapter) OccupancyStats(ctx context.Context, month string, branchID *int) (*entities.OccupancyStats, error) {
	preds := []goqu.Expression{
		goqu.L("to_char(snapshot_date, 'YYYY-MM') = ?", month),
		goqu.L("dept_id IS NULL"),
	}
	if branchID != nil {
		preds = append(preds, goqu.Ex{"branch_id": *branchID})
	}

	query, args, err := r.db.From("bed_occupancy_daily").
		Select(
			goqu.L("AVG(occupancy_rate)").As("avg_occupancy"),
			goqu.L("MAX(occupancy_rate)").As("max_occupancy"),
			goqu.L("MIN(occupancy_rate)").As("min_occupancy"),
			goqu.L("AVG(icu_occupied)").As("avg_icu_occupied"),
			goqu.L("AVG(general_occupied)").As("avg_general_occupied"),
		).
		Where(preds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build occupancy stats query", err)
	}

	stats := &entities.OccupancyStats{}
	var avg, max, min, icu, general sql.NullFloat64
	if err := r.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg, &max, &min, &icu, &general); err != nil {
		return nil, apperrors.NewUnavailableError("occupancy stats query failed", err)
	}
	stats.AvgOccupancy = nullFloat(avg)
	stats.MaxOccupancy = nullFloat(max)
	stats.MinOccupancy = nullFloat(min)
	stats.AvgICUOccupied = nullFloat(icu)
	stats.AvgGeneralOccupied = nullFloat(general)
	return stats, nil
}

// DoctorPerformance lists the top 20 doctors by patient volume for the
// month. Doctors with no patients in the month are dropped.
func (r *ReportAdapter) DoctorPerformance(ctx context.Context, month string, branchID *int) ([]entities.DoctorPerformance, error) {
	q := r.db.From(goqu.T("doctors").As("doc")).
		Join(goqu.T("departments").As("dep"), goqu.On(goqu.Ex{"doc.dept_id": goqu.I("dep.dept_id")})).
		LeftJoin(goqu.T("admissions").As("a"), goqu.On(
			goqu.L("doc.doctor_id = a.doctor_id AND to_char(a.admission_date, 'YYYY-MM') = ?", month))).
		LeftJoin(goqu.T("patient_procedures").As("pp"), goqu.On(
			goqu.L("doc.doctor_id = pp.doctor_id AND to_char(pp.procedure_date, 'YYYY-MM') = ?", month))).
		LeftJoin(goqu.T("billing").As("b"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("b.admission_id")})).
		Select(
			goqu.I("doc.doctor_name"),
			goqu.I("dep.dept_name"),
			goqu.L("COUNT(DISTINCT a.admission_id)").As("patients_handled"),
			goqu.L("COUNT(DISTINCT pp.procedure_id)").As("procedures_performed"),
			goqu.L("AVG(pp.duration_minutes)").As("avg_procedure_duration"),
			goqu.L("SUM(b.total_amount)").As("revenue_generated"),
		).
		GroupBy(goqu.I("doc.doctor_id"), goqu.I("doc.doctor_name"), goqu.I("dep.dept_name")).
		Having(goqu.L("COUNT(DISTINCT a.admission_id) > 0")).
		Order(goqu.C("patients_handled").Desc()).
		Limit(20)
	if branchID != nil {
		q = q.Where(goqu.Ex{"doc.branch_id": *branchID})
	}

	query, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor performance query", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("doctor performance query failed", err)
	}
	defer rows.Close()

	results := []entities.DoctorPerformance{}
	for rows.Next() {
		var dp entities.DoctorPerformance
		var avgDuration, revenue sql.NullFloat64
		if err := rows.Scan(&dp.DoctorName, &dp.DeptName, &dp.PatientsHandled, &dp.ProceduresPerformed, &avgDuration, &revenue); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor performance row", err)
		}
		dp.AvgProcedureDuration = nullFloat(avgDuration)
		dp.RevenueGenerated = nullFloat(revenue)
		results = append(results, dp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctor performance", err)
	}
	return results, nil
}

// OutcomeStats counts outcomes recorded during the month, keyed by the
// outcome date rather than the admission date.
func (r *ReportAdapter) OutcomeStats(ctx context.Context, month string, branchID *int) ([]entities.OutcomeStat, error) {
	preds := []goqu.Expression{goqu.L("to_char(o.outcome_date, 'YYYY-MM') = ?", month)}
	if branchID != nil {
		preds = append(preds, goqu.Ex{"a.branch_id": *branchID})
	}

	query, args, err := r.db.From(goqu.T("outcomes").As("o")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"o.admission_id": goqu.I("a.admission_id")})).
		Select(
			goqu.I("o.outcome_type"),
			goqu.L("COUNT(*)").As("count"),
			goqu.L("AVG("+closedLOSDaysExpr+")").As("avg_los_for_outcome"),
		).
		Where(preds...).
		GroupBy(goqu.I("o.outcome_type")).
		Order(goqu.C("count").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build outcome stats query", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("outcome stats query failed", err)
	}
	defer rows.Close()

	results := []entities.OutcomeStat{}
	for rows.Next() {
		var os entities.OutcomeStat
		var avgLOS sql.NullFloat64
		if err := rows.Scan(&os.OutcomeType, &os.Count, &avgLOS); err != nil {
			return nil, apperrors.NewInternalError("failed to scan outcome stat row", err)
		}
		os.AvgLOSForOutcome = nullFloat(avgLOS)
		results = append(results, os)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating outcome stats", err)
	}
	return results, nil
}

// RevenueBreakdown itemizes the month's billing. The collection rate is
// collected against billed, 0 when nothing was billed.
func (r *ReportAdapter) RevenueBreakdown(ctx context.Context, month string, branchID *int) (*entities.RevenueBreakdown, error) {
	query, args, err := r.db.From(goqu.T("billing").As("b")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"b.admission_id": goqu.I("a.admission_id")})).
		Select(
			goqu.L("SUM(b.room_charges)").As("room_charges"),
			goqu.L("SUM(b.procedure_charges)").As("procedure_charges"),
			goqu.L("SUM(b.medicine_charges)").As("medicine_charges"),
			goqu.L("SUM(b.lab_charges)").As("lab_charges"),
			goqu.L("SUM(b.other_charges)").As("other_charges"),
			goqu.L("SUM(b.total_amount)").As("total_revenue"),
			goqu.L("SUM(b.discount)").As("total_discount"),
			goqu.L("SUM(b.insurance_coverage)").As("insurance_coverage"),
			goqu.L("SUM(b.amount_paid)").As("total_collected"),
		).
		Where(monthPredicates(month, branchID)...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build revenue breakdown query", err)
	}

	breakdown := &entities.RevenueBreakdown{}
	var room, proc, medicine, lab, other, total, discount, insurance, collected sql.NullFloat64
	err = r.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&room, &proc, &medicine, &lab, &other, &total, &discount, &insurance, &collected)
	if err != nil {
		return nil, apperrors.NewUnavailableError("revenue breakdown query failed", err)
	}
	breakdown.RoomCharges = nullFloat(room)
	breakdown.ProcedureCharges = nullFloat(proc)
	breakdown.MedicineCharges = nullFloat(medicine)
	breakdown.LabCharges = nullFloat(lab)
	breakdown.OtherCharges = nullFloat(other)
	breakdown.TotalRevenue = nullFloat(total)
	breakdown.TotalDiscount = nullFloat(discount)
	breakdown.InsuranceCoverage = nullFloat(insurance)
	breakdown.TotalCollected = nullFloat(collected)
	if total.Valid && total.Float64 > 0 && collected.Valid {
		breakdown.CollectionRate = round2(collected.Float64 / total.Float64 * 100)
	}
	return breakdown, nil
}

// BranchName resolves a branch id for report headers and file names
func (r *ReportAdapter) BranchName(ctx context.Context, branchID int) (string, error) {
	query, args, err := r.db.From("branches").
		Select(goqu.C("branch_name")).
		Where(goqu.Ex{"branch_id": branchID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build branch name query", err)
	}

	var name string
	if err := r.client.DB().QueryRowContext(ctx, query, args...).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("branch %d not found", branchID))
		}
		return "", apperrors.NewUnavailableError("branch name query failed", err)
	}
	return name, nil
}
