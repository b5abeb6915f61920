package report

import (
	"fmt"
	"strings"
)

const lineWidth = 80

// RenderText lays the report out as a fixed-width text document. Missing
// aggregates render as N/A, never as a fabricated zero.
func RenderText(r *Report, currency string) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(rule)
	line("HOSPITAL MONTHLY PERFORMANCE REPORT")
	line("Period: %s", r.PeriodLabel())
	line("Branch: %s", r.BranchName)
	line("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	line(rule)
	line("")

	s := r.Summary
	line("SUMMARY METRICS")
	line(thin)
	line("Total Admissions:          %10d", s.TotalAdmissions)
	line("Total Discharges:          %10d", s.TotalDischarges)
	line("Emergency Admissions:      %10d (%.1f%%)", s.EmergencyAdmissions, s.EmergencyPercentage)
	if s.AvgLOS == nil {
		line("Average Length of Stay:        N/A")
	} else {
		line("Average Length of Stay:    %10.2f days", *s.AvgLOS)
	}
	line("Total Procedures:          %10d", s.TotalProcedures)
	line("Readmission Rate:          %10.2f%%", s.ReadmissionRate)
	if s.TotalRevenue == nil {
		line("Total Revenue:             N/A")
	} else {
		line("Total Revenue:             %s%s", currency, groupDigits(*s.TotalRevenue, 10, 2))
	}
	if s.AvgCostPerPatient == nil {
		line("Avg Cost per Patient:      N/A")
	} else {
		line("Avg Cost per Patient:      %s%s", currency, groupDigits(*s.AvgCostPerPatient, 10, 2))
	}
	line("")

	o := r.Occupancy
	line("BED OCCUPANCY STATISTICS")
	line(thin)
	line("Average Occupancy Rate:    %s", fmtFloat(o.AvgOccupancy, "%"))
	line("Maximum Occupancy Rate:    %s", fmtFloat(o.MaxOccupancy, "%"))
	line("Minimum Occupancy Rate:    %s", fmtFloat(o.MinOccupancy, "%"))
	line("Avg ICU Beds Occupied:     %s", fmtFloat(o.AvgICUOccupied, ""))
	line("Avg General Beds Occupied: %s", fmtFloat(o.AvgGeneralOccupied, ""))
	line("")

	line("DEPARTMENT PERFORMANCE")
	line(thin)
	line("%-20s %8s %8s %8s %15s %10s", "Department", "Admits", "Dischar", "Avg LOS", "Revenue", "Procedures")
	line(thin)
	for _, dept := range r.Departments {
		revenue := "N/A"
		if dept.Revenue != nil {
			revenue = currency + groupDigits(*dept.Revenue, 13, 0)
		}
		avgLOS := "N/A"
		if dept.AvgLOS != nil {
			avgLOS = fmt.Sprintf("%8.2f", *dept.AvgLOS)
		}
		line("%-20s %8d %8d %8s %15s %10d",
			dept.DeptName, dept.Admissions, dept.Discharges, avgLOS, revenue, dept.Procedures)
	}
	line("")

	rev := r.Revenue
	line("REVENUE BREAKDOWN")
	line(thin)
	line("Room Charges:              %s", fmtMoney(rev.RoomCharges, currency))
	line("Procedure Charges:         %s", fmtMoney(rev.ProcedureCharges, currency))
	line("Medicine Charges:          %s", fmtMoney(rev.MedicineCharges, currency))
	line("Lab Charges:               %s", fmtMoney(rev.LabCharges, currency))
	line("Other Charges:             %s", fmtMoney(rev.OtherCharges, currency))
	line("Total Revenue:             %s", fmtMoney(rev.TotalRevenue, currency))
	line("Total Discount:            %s", fmtMoney(rev.TotalDiscount, currency))
	line("Insurance Coverage:        %s", fmtMoney(rev.InsuranceCoverage, currency))
	line("Total Collected:           %s", fmtMoney(rev.TotalCollected, currency))
	line("Collection Rate:           %15.2f%%", rev.CollectionRate)
	line("")

	line("PATIENT OUTCOMES")
	line(thin)
	line("%-20s %10s %12s", "Outcome Type", "Count", "Avg LOS")
	line(thin)
	for _, outcome := range r.Outcomes {
		avgLOS := "N/A"
		if outcome.AvgLOSForOutcome != nil {
			avgLOS = fmt.Sprintf("%12.2f", *outcome.AvgLOSForOutcome)
		}
		line("%-20s %10d %12s", outcome.OutcomeType, outcome.Count, avgLOS)
	}
	line("")

	line("TOP 20 DOCTORS BY PATIENT VOLUME")
	line(thin)
	line("%-25s %-20s %8s %10s %15s", "Doctor Name", "Department", "Patients", "Procedures", "Revenue")
	line(thin)
	for _, doc := range r.TopDoctors {
		revenue := "N/A"
		if doc.RevenueGenerated != nil {
			revenue = currency + groupDigits(*doc.RevenueGenerated, 13, 0)
		}
		line("%-25s %-20s %8d %10d %15s",
			doc.DoctorName, doc.DeptName, doc.PatientsHandled, doc.ProceduresPerformed, revenue)
	}
	line("")
	line(rule)
	line("END OF REPORT")
	b.WriteString(rule)

	return b.String()
}

// fmtFloat renders a nullable value right-aligned to 10 with a suffix
func fmtFloat(v *float64, suffix string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%10.2f%s", *v, suffix)
}

// fmtMoney renders a nullable amount right-aligned to 15 with the currency prefix
func fmtMoney(v *float64, currency string) string {
	if v == nil {
		return fmt.Sprintf("%15s", "N/A")
	}
	return currency + groupDigits(*v, 15, 2)
}

// groupDigits formats v with thousands separators, right-aligned to width
func groupDigits(v float64, width, decimals int) string {
	raw := fmt.Sprintf("%.*f", decimals, v)

	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}
	intPart := raw
	fracPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart, fracPart = raw[:i], raw[i:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("%*s", width, sign+grouped.String()+fracPart)
}
