package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportOptions selects which artifacts WriteFiles produces
type ExportOptions struct {
	Dir      string
	Currency string
	XLSX     bool
}

// WriteFiles writes the text report, the department CSV and the full JSON
// dump, plus an XLSX workbook when requested. It returns the paths written.
func WriteFiles(r *Report, opts ExportOptions) ([]string, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	base := filepath.Join(opts.Dir, r.FileBase())
	written := []string{}

	txtPath := base + ".txt"
	if err := os.WriteFile(txtPath, []byte(RenderText(r, opts.Currency)), 0o644); err != nil {
		return written, fmt.Errorf("write text report: %w", err)
	}
	written = append(written, txtPath)

	csvPath := base + "_departments.csv"
	if err := writeDepartmentsCSV(r, csvPath); err != nil {
		return written, err
	}
	written = append(written, csvPath)

	jsonPath := base + "_data.json"
	if err := writeJSON(r, jsonPath); err != nil {
		return written, err
	}
	written = append(written, jsonPath)

	if opts.XLSX {
		xlsxPath := base + ".xlsx"
		if err := writeWorkbook(r, xlsxPath); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}

	return written, nil
}

func writeDepartmentsCSV(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"dept_name", "admissions", "discharges", "avg_los", "revenue",
		"avg_revenue_per_patient", "procedures", "emergency_cases",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, dept := range r.Departments {
		row := []string{
			dept.DeptName,
			strconv.FormatInt(dept.Admissions, 10),
			strconv.FormatInt(dept.Discharges, 10),
			csvFloat(dept.AvgLOS),
			csvFloat(dept.Revenue),
			csvFloat(dept.AvgRevenuePerPatient),
			strconv.FormatInt(dept.Procedures, 10),
			strconv.FormatInt(dept.EmergencyCases, 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// csvFloat renders a nullable float; absent values stay empty cells
func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func writeJSON(r *Report, path string) error {
	payload := map[string]interface{}{
		"report_period": r.MonthStr,
		"generated_at":  r.GeneratedAt.Format("2006-01-02T15:04:05"),
		"branch":        r.BranchName,
		"summary":       r.Summary,
		"bed_occupancy": r.Occupancy,
		"departments":   r.Departments,
		"revenue":       r.Revenue,
		"outcomes":      r.Outcomes,
		"top_doctors":   r.TopDoctors,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	return nil
}

// writeWorkbook produces a three-sheet XLSX: summary figures, the
// department table and the top-doctor table.
func writeWorkbook(r *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]interface{}{
		{"Report Period", r.PeriodLabel()},
		{"Branch", r.BranchName},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Total Admissions", r.Summary.TotalAdmissions},
		{"Total Discharges", r.Summary.TotalDischarges},
		{"Emergency Admissions", r.Summary.EmergencyAdmissions},
		{"Emergency Percentage", r.Summary.EmergencyPercentage},
		{"Average Length of Stay", xlsxFloat(r.Summary.AvgLOS)},
		{"Total Procedures", r.Summary.TotalProcedures},
		{"Readmission Rate", r.Summary.ReadmissionRate},
		{"Total Revenue", xlsxFloat(r.Summary.TotalRevenue)},
		{"Avg Cost per Patient", xlsxFloat(r.Summary.AvgCostPerPatient)},
	}
	for i, row := range summaryRows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write summary sheet: %w", err)
		}
	}

	deptSheet := "Departments"
	if _, err := f.NewSheet(deptSheet); err != nil {
		return fmt.Errorf("create departments sheet: %w", err)
	}
	deptHeader := []interface{}{
		"Department", "Type", "Admissions", "Discharges", "Avg LOS",
		"Revenue", "Avg Revenue per Patient", "Procedures", "Emergency Cases",
	}
	if err := f.SetSheetRow(deptSheet, "A1", &deptHeader); err != nil {
		return fmt.Errorf("write departments header: %w", err)
	}
	for i, dept := range r.Departments {
		row := []interface{}{
			dept.DeptName, dept.DeptType, dept.Admissions, dept.Discharges,
			xlsxFloat(dept.AvgLOS), xlsxFloat(dept.Revenue),
			xlsxFloat(dept.AvgRevenuePerPatient), dept.Procedures, dept.EmergencyCases,
		}
		if err := f.SetSheetRow(deptSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write departments row: %w", err)
		}
	}

	doctorSheet := "Top Doctors"
	if _, err := f.NewSheet(doctorSheet); err != nil {
		return fmt.Errorf("create doctors sheet: %w", err)
	}
	doctorHeader := []interface{}{
		"Doctor", "Department", "Patients", "Procedures",
		"Avg Procedure Duration", "Revenue",
	}
	if err := f.SetSheetRow(doctorSheet, "A1", &doctorHeader); err != nil {
		return fmt.Errorf("write doctors header: %w", err)
	}
	for i, doc := range r.TopDoctors {
		row := []interface{}{
			doc.DoctorName, doc.DeptName, doc.PatientsHandled, doc.ProceduresPerformed,
			xlsxFloat(doc.AvgProcedureDuration), xlsxFloat(doc.RevenueGenerated),
		}
		if err := f.SetSheetRow(doctorSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write doctors row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// xlsxFloat leaves absent values as empty cells
func xlsxFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
