package database

import (
	"context"
	"database/sql"
	"math"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// losDaysExpr is the length-of-stay in days for one admission, with open
// stays measured against the current time.
const losDaysExpr = "EXTRACT(EPOCH FROM (COALESCE(a.discharge_date, CURRENT_TIMESTAMP) - a.admission_date)) / 86400.0"

// MetricsAdapter implements MetricsRepository over PostgreSQL. Every
// operation is a fixed sequence of parameterized aggregate queries built
// with goqu; filter values are never interpolated into SQL text.
type MetricsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.MetricsRepository = (*MetricsAdapter)(nil)

// NewMetricsAdapter creates a new metrics adapter
func NewMetricsAdapter(client *postgres.Client) *MetricsAdapter {
	return &MetricsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// admissionPredicates maps each set filter field to one parameterized
// predicate against the admissions alias "a". Unset fields contribute
// nothing.
func admissionPredicates(f repositories.MetricsFilter) []goqu.Expression {
	exprs := []goqu.Expression{}
	if f.BranchID != nil {
		exprs = append(exprs, goqu.Ex{"a.branch_id": *f.BranchID})
	}
	if f.DeptID != nil {
		exprs = append(exprs, goqu.Ex{"a.dept_id": *f.DeptID})
	}
	if f.StartDate != nil {
		exprs = append(exprs, goqu.I("a.admission_date").Gte(*f.StartDate))
	}
	if f.EndDate != nil {
		exprs = append(exprs, goqu.I("a.admission_date").Lte(*f.EndDate))
	}
	if f.Month != "" {
		exprs = append(exprs, goqu.L("to_char(a.admission_date, 'YYYY-MM') = ?", f.Month))
	}
	return exprs
}

// KPISummary computes the dashboard headline metrics for the filtered
// admission set. Null aggregates are coerced to 0 per the dashboard
// contract.
func (a *MetricsAdapter) KPISummary(ctx context.Context, filter repositories.MetricsFilter) (*entities.KPISummary, error) {
	summary := &entities.KPISummary{}
	preds := admissionPredicates(filter)

	// Average length of stay
	query, args, err := a.db.From(goqu.T("admissions").As("a")).
		Select(goqu.L("AVG(" + losDaysExpr + ")").As("alos")).
		Where(preds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alos query", err)
	}
	var alos sql.NullFloat64
	if err := a.scanRow(ctx, query, args, &alos); err != nil {
		return nil, err
	}
	summary.ALOS = round2(alos.Float64)

	// Current bed occupancy, from today's branch snapshots
	occPreds := []goqu.Expression{goqu.L("snapshot_date = CURRENT_DATE")}
	if filter.BranchID != nil {
		occPreds = append(occPreds, goqu.Ex{"branch_id": *filter.BranchID})
	}
	query, args, err = a.db.From("bed_occupancy_daily").
		Select(goqu.L("AVG(occupancy_rate)").As("avg_occupancy")).
		Where(occPreds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build occupancy query", err)
	}
	var occupancy sql.NullFloat64
	if err := a.scanRow(ctx, query, args, &occupancy); err != nil {
		return nil, err
	}
	summary.BedOccupancyRate = round2(occupancy.Float64)

	// Admission counts partitioned by status
	query, args, err = a.db.From(goqu.T("admissions").As("a")).
		Select(
			goqu.L("COUNT(*)").As("total_admissions"),
			goqu.L("SUM(CASE WHEN a.status = 'Discharged' THEN 1 ELSE 0 END)").As("total_discharges"),
			goqu.L("SUM(CASE WHEN a.status = 'Active' THEN 1 ELSE 0 END)").As("active_patients"),
		).
		Where(preds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build counts query", err)
	}
	var discharges, active sql.NullInt64
	if err := a.scanRow(ctx, query, args, &summary.TotalAdmissions, &discharges, &active); err != nil {
		return nil, err
	}
	summary.TotalDischarges = discharges.Int64
	summary.ActivePatients = active.Int64

	// 30-day readmission rate over discharged admissions
	readmitPreds := append(append([]goqu.Expression{}, preds...), goqu.Ex{"a.status": "Discharged"})
	query, args, err = a.db.From(goqu.T("admissions").As("a")).
		LeftJoin(goqu.T("outcomes").As("o"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("o.admission_id")})).
		Select(
			goqu.L("COUNT(*)").As("total_discharges"),
			goqu.L("SUM(CASE WHEN o.readmission_within_30days THEN 1 ELSE 0 END)").As("readmissions"),
		).
		Where(readmitPreds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build readmission query", err)
	}
	var dischargedTotal int64
	var readmissions sql.NullInt64
	if err := a.scanRow(ctx, query, args, &dischargedTotal, &readmissions); err != nil {
		return nil, err
	}
	if dischargedTotal > 0 {
		summary.ReadmissionRate = round2(float64(readmissions.Int64) / float64(dischargedTotal) * 100)
	}

	// Procedure volume joined to the filtered admissions
	query, args, err = a.db.From(goqu.T("patient_procedures").As("pp")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"pp.admission_id": goqu.I("a.admission_id")})).
		Select(goqu.L("COUNT(*)").As("procedure_count")).
		Where(preds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build procedure volume query", err)
	}
	if err := a.scanRow(ctx, query, args, &summary.ProcedureVolume); err != nil {
		return nil, err
	}

	// Emergency vs scheduled split
	query, args, err = a.db.From(goqu.T("admissions").As("a")).
		Select(goqu.I("a.admission_type"), goqu.L("COUNT(*)").As("count")).
		Where(preds...).
		GroupBy(goqu.I("a.admission_type")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build admission type query", err)
	}
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("admission type query failed", err)
	}
	defer rows.Close()
	for rows.Next() {
		var admissionType string
		var count int64
		if err := rows.Scan(&admissionType, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan admission type row", err)
		}
		switch admissionType {
		case "Emergency":
			summary.EmergencyCases = count
		case "Scheduled":
			summary.ScheduledCases = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating admission types", err)
	}

	// Average cost per patient
	query, args, err = a.db.From(goqu.T("billing").As("b")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"b.admission_id": goqu.I("a.admission_id")})).
		Select(goqu.L("AVG(b.total_amount)").As("avg_cost")).
		Where(preds...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build avg cost query", err)
	}
	var avgCost sql.NullFloat64
	if err := a.scanRow(ctx, query, args, &avgCost); err != nil {
		return nil, err
	}
	summary.AvgCostPerPatient = round2(avgCost.Float64)

	return summary, nil
}

// AdmissionTrends buckets the trailing 90 days of admissions by day, ISO
// week or month, split by admission type.
func (a *MetricsAdapter) AdmissionTrends(ctx context.Context, period repositories.TrendPeriod, filter repositories.MetricsFilter) ([]entities.AdmissionTrendPoint, error) {
	var bucket string
	switch period {
	case repositories.TrendDaily:
		bucket = "to_char(admission_date, 'YYYY-MM-DD')"
	case repositories.TrendWeekly:
		bucket = "to_char(admission_date, 'IYYY-IW')"
	case repositories.TrendMonthly:
		bucket = "to_char(admission_date, 'YYYY-MM')"
	default:
		return nil, apperrors.NewValidationError("period must be daily, weekly or monthly")
	}

	preds := []goqu.Expression{goqu.L("admission_date >= CURRENT_DATE - INTERVAL '90 days'")}
	if filter.BranchID != nil {
		preds = append(preds, goqu.Ex{"branch_id": *filter.BranchID})
	}
	if filter.DeptID != nil {
		preds = append(preds, goqu.Ex{"dept_id": *filter.DeptID})
	}

	query, args, err := a.db.From("admissions").
		Select(
			goqu.L(bucket).As("period"),
			goqu.L("COUNT(*)").As("total_admissions"),
			goqu.L("SUM(CASE WHEN admission_type = 'Emergency' THEN 1 ELSE 0 END)").As("emergency_admissions"),
			goqu.L("SUM(CASE WHEN admission_type = 'Scheduled' THEN 1 ELSE 0 END)").As("scheduled_admissions"),
		).
		Where(preds...).
		GroupBy(goqu.L(bucket)).
		Order(goqu.L(bucket).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build admission trend query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("admission trend query failed", err)
	}
	defer rows.Close()

	points := []entities.AdmissionTrendPoint{}
	for rows.Next() {
		var p entities.AdmissionTrendPoint
		var emergency, scheduled sql.NullInt64
		if err := rows.Scan(&p.Period, &p.TotalAdmissions, &emergency, &scheduled); err != nil {
			return nil, apperrors.NewInternalError("failed to scan trend point", err)
		}
		p.EmergencyAdmissions = emergency.Int64
		p.ScheduledAdmissions = scheduled.Int64
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating trend points", err)
	}
	return points, nil
}

// BedOccupancyTrends returns daily mean occupancy (with ICU/general
// sub-means) over the trailing 30 days.
func (a *MetricsAdapter) BedOccupancyTrends(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OccupancyTrendPoint, error) {
	preds := []goqu.Expression{goqu.L("snapshot_date >= CURRENT_DATE - INTERVAL '30 days'")}
	if filter.BranchID != nil {
		preds = append(preds, goqu.Ex{"branch_id": *filter.BranchID})
	}
	if filter.DeptID != nil {
		preds = append(preds, goqu.Ex{"dept_id": *filter.DeptID})
	}

	query, args, err := a.db.From("bed_occupancy_daily").
		Select(
			goqu.L("to_char(snapshot_date, 'YYYY-MM-DD')").As("date"),
			goqu.L("AVG(occupancy_rate)").As("avg_occupancy"),
			goqu.L("AVG(icu_occupied)").As("avg_icu_occupied"),
			goqu.L("AVG(general_occupied)").As("avg_general_occupied"),
		).
		Where(preds...).
		GroupBy(goqu.C("snapshot_date")).
		Order(goqu.C("snapshot_date").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build occupancy trend query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("occupancy trend query failed", err)
	}
	defer rows.Close()

	points := []entities.OccupancyTrendPoint{}
	for rows.Next() {
		var p entities.OccupancyTrendPoint
		var occ, icu, general sql.NullFloat64
		if err := rows.Scan(&p.Date, &occ, &icu, &general); err != nil {
			return nil, apperrors.NewInternalError("failed to scan occupancy point", err)
		}
		p.AvgOccupancy = nullFloat(occ)
		p.AvgICUOccupied = nullFloat(icu)
		p.AvgGeneralOccupied = nullFloat(general)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating occupancy points", err)
	}
	return points, nil
}

// DepartmentComparison compares core metrics across departments. The left
// joins keep zero-activity departments visible with nil means.
func (a *MetricsAdapter) DepartmentComparison(ctx context.Context, branchID *int) ([]entities.DepartmentComparison, error) {
	q := a.db.From(goqu.T("departments").As("d")).
		LeftJoin(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"d.dept_id": goqu.I("a.dept_id")})).
		LeftJoin(goqu.T("patient_procedures").As("pp"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("pp.admission_id")})).
		LeftJoin(goqu.T("billing").As("b"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("b.admission_id")})).
		Select(
			goqu.I("d.dept_name"),
			goqu.L("COUNT(DISTINCT a.admission_id)").As("total_admissions"),
			goqu.L("AVG("+losDaysExpr+")").As("avg_los"),
			goqu.L("COUNT(DISTINCT pp.procedure_id)").As("total_procedures"),
			goqu.L("SUM(CASE WHEN a.admission_type = 'Emergency' THEN 1 ELSE 0 END)").As("emergency_cases"),
			goqu.L("AVG(b.total_amount)").As("avg_cost"),
		).
		GroupBy(goqu.I("d.dept_id"), goqu.I("d.dept_name")).
		Order(goqu.C("total_admissions").Desc())
	if branchID != nil {
		q = q.Where(goqu.Ex{"d.branch_id": *branchID})
	}

	query, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build department comparison query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("department comparison query failed", err)
	}
	defer rows.Close()

	results := []entities.DepartmentComparison{}
	for rows.Next() {
		var dc entities.DepartmentComparison
		var avgLOS, avgCost sql.NullFloat64
		var emergency sql.NullInt64
		if err := rows.Scan(&dc.DeptName, &dc.TotalAdmissions, &avgLOS, &dc.TotalProcedures, &emergency, &avgCost); err != nil {
			return nil, apperrors.NewInternalError("failed to scan department row", err)
		}
		dc.AvgLOS = nullFloat(avgLOS)
		dc.AvgCost = nullFloat(avgCost)
		dc.EmergencyCases = emergency.Int64
		results = append(results, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating department rows", err)
	}
	return results, nil
}

// BranchComparison compares admissions, stay length, 30-day occupancy and
// revenue across branches.
func (a *MetricsAdapter) BranchComparison(ctx context.Context) ([]entities.BranchComparison, error) {
	query, args, err := a.db.From(goqu.T("branches").As("br")).
		LeftJoin(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"br.branch_id": goqu.I("a.branch_id")})).
		LeftJoin(goqu.T("bed_occupancy_daily").As("bod"), goqu.On(
			goqu.L("br.branch_id = bod.branch_id AND bod.snapshot_date >= CURRENT_DATE - INTERVAL '30 days'"))).
		LeftJoin(goqu.T("billing").As("bil"), goqu.On(goqu.Ex{"a.admission_id": goqu.I("bil.admission_id")})).
		Select(
			goqu.I("br.branch_name"),
			goqu.I("br.total_beds"),
			goqu.L("COUNT(DISTINCT a.admission_id)").As("total_admissions"),
			goqu.L("AVG("+losDaysExpr+")").As("avg_los"),
			goqu.L("AVG(bod.occupancy_rate)").As("avg_occupancy"),
			goqu.L("SUM(bil.total_amount)").As("total_revenue"),
			goqu.L("AVG(bil.total_amount)").As("avg_revenue_per_patient"),
		).
		GroupBy(goqu.I("br.branch_id"), goqu.I("br.branch_name"), goqu.I("br.total_beds")).
		Order(goqu.C("total_admissions").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build branch comparison query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("branch comparison query failed", err)
	}
	defer rows.Close()

	results := []entities.BranchComparison{}
	for rows.Next() {
		var bc entities.BranchComparison
		var avgLOS, avgOcc, revenue, avgRevenue sql.NullFloat64
		if err := rows.Scan(&bc.BranchName, &bc.TotalBeds, &bc.TotalAdmissions, &avgLOS, &avgOcc, &revenue, &avgRevenue); err != nil {
			return nil, apperrors.NewInternalError("failed to scan branch row", err)
		}
		bc.AvgLOS = nullFloat(avgLOS)
		bc.AvgOccupancy = nullFloat(avgOcc)
		bc.TotalRevenue = nullFloat(revenue)
		bc.AvgRevenuePerPatient = nullFloat(avgRevenue)
		results = append(results, bc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating branch rows", err)
	}
	return results, nil
}

// DoctorUtilization estimates per-doctor load over the trailing 30 days.
// The percentage is a heuristic from handled patients and performed
// procedures, clamped at 100.
func (a *MetricsAdapter) DoctorUtilization(ctx context.Context, filter repositories.MetricsFilter) ([]entities.DoctorUtilization, error) {
	q := a.db.From(goqu.T("doctors").As("doc")).
		LeftJoin(goqu.T("departments").As("dep"), goqu.On(goqu.Ex{"doc.dept_id": goqu.I("dep.dept_id")})).
		LeftJoin(goqu.T("admissions").As("a"), goqu.On(
			goqu.L("doc.doctor_id = a.doctor_id AND a.admission_date >= CURRENT_DATE - INTERVAL '30 days'"))).
		LeftJoin(goqu.T("patient_procedures").As("pp"), goqu.On(
			goqu.L("doc.doctor_id = pp.doctor_id AND pp.procedure_date >= CURRENT_DATE - INTERVAL '30 days'"))).
		Select(
			goqu.I("doc.doctor_name"),
			goqu.I("dep.dept_name"),
			goqu.I("doc.working_hours_per_week"),
			goqu.L("COUNT(DISTINCT a.admission_id)").As("patients_handled"),
			goqu.L("COUNT(DISTINCT pp.procedure_id)").As("procedures_performed"),
			goqu.L("AVG(pp.duration_minutes)").As("avg_procedure_duration"),
		).
		GroupBy(goqu.I("doc.doctor_id"), goqu.I("doc.doctor_name"), goqu.I("dep.dept_name"), goqu.I("doc.working_hours_per_week")).
		Order(goqu.C("patients_handled").Desc())

	docPreds := []goqu.Expression{}
	if filter.DeptID != nil {
		docPreds = append(docPreds, goqu.Ex{"doc.dept_id": *filter.DeptID})
	}
	if filter.BranchID != nil {
		docPreds = append(docPreds, goqu.Ex{"doc.branch_id": *filter.BranchID})
	}
	if len(docPreds) > 0 {
		q = q.Where(docPreds...)
	}

	query, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor utilization query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("doctor utilization query failed", err)
	}
	defer rows.Close()

	results := []entities.DoctorUtilization{}
	for rows.Next() {
		var du entities.DoctorUtilization
		var deptName sql.NullString
		var avgDuration sql.NullFloat64
		if err := rows.Scan(&du.DoctorName, &deptName, &du.WeeklyHours, &du.PatientsHandled, &du.ProceduresPerformed, &avgDuration); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor row", err)
		}
		du.DeptName = deptName.String
		du.AvgProcedureDuration = nullFloat(avgDuration)
		du.UtilizationPercent = utilizationPercent(du.PatientsHandled, du.ProceduresPerformed, du.WeeklyHours)
		results = append(results, du)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctor rows", err)
	}
	return results, nil
}

// utilizationPercent estimates load as patients x 0.5h plus procedures x
// 1.5h against the weekly hours, rounded to 2 decimals and clamped at 100.
func utilizationPercent(patients, procedures int64, weeklyHours int) float64 {
	if weeklyHours <= 0 {
		return 0
	}
	estimatedHours := float64(patients)*0.5 + float64(procedures)*1.5
	pct := round2(estimatedHours / float64(weeklyHours) * 100)
	return math.Min(100, pct)
}

// OutcomesSummary counts discharge outcomes by type over the trailing 90 days
func (a *MetricsAdapter) OutcomesSummary(ctx context.Context, filter repositories.MetricsFilter) ([]entities.OutcomeCount, error) {
	preds := []goqu.Expression{goqu.L("o.outcome_date >= CURRENT_DATE - INTERVAL '90 days'")}
	if filter.BranchID != nil {
		preds = append(preds, goqu.Ex{"a.branch_id": *filter.BranchID})
	}
	if filter.DeptID != nil {
		preds = append(preds, goqu.Ex{"a.dept_id": *filter.DeptID})
	}

	query, args, err := a.db.From(goqu.T("outcomes").As("o")).
		Join(goqu.T("admissions").As("a"), goqu.On(goqu.Ex{"o.admission_id": goqu.I("a.admission_id")})).
		Select(goqu.I("o.outcome_type"), goqu.L("COUNT(*)").As("count")).
		Where(preds...).
		GroupBy(goqu.I("o.outcome_type")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build outcomes query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("outcomes query failed", err)
	}
	defer rows.Close()

	results := []entities.OutcomeCount{}
	for rows.Next() {
		var oc entities.OutcomeCount
		if err := rows.Scan(&oc.OutcomeType, &oc.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan outcome row", err)
		}
		results = append(results, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating outcome rows", err)
	}
	return results, nil
}

// ActiveAlerts lists unresolved alerts ordered by severity rank
// (Critical > High > Medium > Low) then recency, capped at 50.
func (a *MetricsAdapter) ActiveAlerts(ctx context.Context, branchID *int) ([]entities.ActiveAlert, error) {
	preds := []goqu.Expression{goqu.Ex{"ra.resolved": false}}
	if branchID != nil {
		preds = append(preds, goqu.Ex{"ra.branch_id": *branchID})
	}

	query, args, err := a.db.From(goqu.T("resource_alerts").As("ra")).
		Join(goqu.T("branches").As("b"), goqu.On(goqu.Ex{"ra.branch_id": goqu.I("b.branch_id")})).
		LeftJoin(goqu.T("departments").As("d"), goqu.On(goqu.Ex{"ra.dept_id": goqu.I("d.dept_id")})).
		Select(
			goqu.I("ra.alert_id"),
			goqu.I("ra.alert_type"),
			goqu.I("ra.severity"),
			goqu.I("ra.alert_message"),
			goqu.I("ra.alert_date"),
			goqu.I("b.branch_name"),
			goqu.I("d.dept_name"),
		).
		Where(preds...).
		Order(
			goqu.L("CASE ra.severity WHEN 'Critical' THEN 0 WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END").Asc(),
			goqu.I("ra.alert_date").Desc(),
		).
		Limit(50).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alerts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("alerts query failed", err)
	}
	defer rows.Close()

	results := []entities.ActiveAlert{}
	for rows.Next() {
		var alert entities.ActiveAlert
		var deptName sql.NullString
		if err := rows.Scan(&alert.AlertID, &alert.AlertType, &alert.Severity, &alert.Message, &alert.AlertDate, &alert.BranchName, &deptName); err != nil {
			return nil, apperrors.NewInternalError("failed to scan alert row", err)
		}
		if deptName.Valid {
			alert.DeptName = &deptName.String
		}
		results = append(results, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating alert rows", err)
	}
	return results, nil
}

// PeakTimes returns the busiest admission hours (top 10) and days of week
// over the trailing 90 days, both descending by count.
func (a *MetricsAdapter) PeakTimes(ctx context.Context, branchID *int) (*entities.PeakTimes, error) {
	preds := []goqu.Expression{goqu.L("admission_date >= CURRENT_DATE - INTERVAL '90 days'")}
	if branchID != nil {
		preds = append(preds, goqu.Ex{"branch_id": *branchID})
	}

	query, args, err := a.db.From("admissions").
		Select(
			goqu.L("EXTRACT(HOUR FROM admission_date)::int").As("hour"),
			goqu.L("COUNT(*)").As("admission_count"),
		).
		Where(preds...).
		GroupBy(goqu.L("EXTRACT(HOUR FROM admission_date)")).
		Order(goqu.C("admission_count").Desc()).
		Limit(10).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build peak hours query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("peak hours query failed", err)
	}
	defer rows.Close()

	peak := &entities.PeakTimes{PeakHours: []entities.PeakHour{}, PeakDays: []entities.PeakDay{}}
	for rows.Next() {
		var ph entities.PeakHour
		if err := rows.Scan(&ph.Hour, &ph.AdmissionCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan peak hour", err)
		}
		peak.PeakHours = append(peak.PeakHours, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating peak hours", err)
	}

	query, args, err = a.db.From("admissions").
		Select(
			goqu.L("trim(to_char(admission_date, 'Day'))").As("day_name"),
			// day_number runs 1=Sunday .. 7=Saturday, not the 0-based DOW scale
			goqu.L("EXTRACT(DOW FROM admission_date)::int + 1").As("day_number"),
			goqu.L("COUNT(*)").As("admission_count"),
		).
		Where(preds...).
		GroupBy(
			goqu.L("trim(to_char(admission_date, 'Day'))"),
			goqu.L("EXTRACT(DOW FROM admission_date)"),
		).
		Order(goqu.C("admission_count").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build peak days query", err)
	}

	dayRows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("peak days query failed", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var pd entities.PeakDay
		if err := dayRows.Scan(&pd.DayName, &pd.DayNumber, &pd.AdmissionCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan peak day", err)
		}
		peak.PeakDays = append(peak.PeakDays, pd)
	}
	if err := dayRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating peak days", err)
	}

	return peak, nil
}

// scanRow runs a single-row aggregate query and scans the result
func (a *MetricsAdapter) scanRow(ctx context.Context, query string, args []interface{}, dest ...interface{}) error {
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return apperrors.NewUnavailableError("aggregate query failed", err)
	}
	return nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
