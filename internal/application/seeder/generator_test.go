package seeder

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return Config{
		StartDate: now.AddDate(0, 0, -60),
		Days:      60,
		Patients:  300,
		Now:       now,
	}
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	return Generate(testConfig(), rand.New(rand.NewSource(42)))
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate(testConfig(), rand.New(rand.NewSource(42)))
	second := Generate(testConfig(), rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)

	third := Generate(testConfig(), rand.New(rand.NewSource(7)))
	assert.NotEqual(t, first.Admissions, third.Admissions)
}

func TestGenerate_Branches(t *testing.T) {
	ds := testDataset(t)

	require.Len(t, ds.Branches, len(branchNames))
	for _, branch := range ds.Branches {
		assert.GreaterOrEqual(t, branch.TotalBeds, 200)
		assert.LessOrEqual(t, branch.TotalBeds, 400)
		assert.Equal(t, branch.TotalBeds, branch.ICUBeds+branch.GeneralBeds)
		assert.Equal(t, int(float64(branch.TotalBeds)*0.15), branch.ICUBeds)
	}
}

func TestGenerate_Departments(t *testing.T) {
	ds := testDataset(t)

	require.Len(t, ds.Departments, len(branchNames)*len(deptTypes))
	perBranch := map[int]int{}
	for _, dept := range ds.Departments {
		perBranch[dept.BranchID]++
		assert.GreaterOrEqual(t, dept.TotalBeds, 30)
		assert.LessOrEqual(t, dept.TotalBeds, 80)
	}
	for _, branch := range ds.Branches {
		assert.Equal(t, len(deptTypes), perBranch[branch.ID])
	}
}

func TestGenerate_Doctors(t *testing.T) {
	ds := testDataset(t)

	deptByID := map[int]int{}
	perDept := map[int]int{}
	for _, dept := range ds.Departments {
		deptByID[dept.ID] = dept.BranchID
	}
	for _, doc := range ds.Doctors {
		perDept[doc.DeptID]++
		// Doctor's branch must match the department's branch
		assert.Equal(t, deptByID[doc.DeptID], doc.BranchID)
		assert.Contains(t, workingHourChoices, doc.WeeklyHours)
	}
	for _, dept := range ds.Departments {
		assert.GreaterOrEqual(t, perDept[dept.ID], 3)
		assert.LessOrEqual(t, perDept[dept.ID], 5)
	}
}

func TestGenerate_Patients(t *testing.T) {
	ds := testDataset(t)

	require.Len(t, ds.Patients, 300)
	for _, p := range ds.Patients {
		assert.GreaterOrEqual(t, p.Age, 1)
		assert.LessOrEqual(t, p.Age, 90)
		assert.True(t, strings.HasPrefix(p.Contact, "+91"), "contact %q", p.Contact)
		assert.Contains(t, insuranceTypes, p.InsuranceType)
		assert.Contains(t, genders, p.Gender)
	}
}

func TestGenerate_ProcedureCatalog_PerDepartment(t *testing.T) {
	ds := testDataset(t)

	expected := 0
	for _, dept := range ds.Departments {
		expected += len(proceduresByDeptType[dept.Type])
	}
	require.Len(t, ds.Procedures, expected)

	// Every department must own a full copy of its specialty catalog
	deptTypeByID := map[int]string{}
	for _, dept := range ds.Departments {
		deptTypeByID[dept.ID] = dept.Type
	}
	perDept := map[int]int{}
	for _, proc := range ds.Procedures {
		perDept[proc.DeptID]++
	}
	for _, dept := range ds.Departments {
		assert.Equal(t, len(proceduresByDeptType[deptTypeByID[dept.ID]]), perDept[dept.ID],
			"department %d should carry its full catalog", dept.ID)
	}
}

func TestGenerate_Admissions(t *testing.T) {
	cfg := testConfig()
	ds := testDataset(t)

	assert.GreaterOrEqual(t, len(ds.Admissions), cfg.Days*8)
	assert.LessOrEqual(t, len(ds.Admissions), cfg.Days*30)

	deptBranch := map[int]int{}
	for _, dept := range ds.Departments {
		deptBranch[dept.ID] = dept.BranchID
	}
	doctorDept := map[int]int{}
	for _, doc := range ds.Doctors {
		doctorDept[doc.ID] = doc.DeptID
	}

	end := cfg.StartDate.AddDate(0, 0, cfg.Days)
	for _, adm := range ds.Admissions {
		assert.Equal(t, deptBranch[adm.DeptID], adm.BranchID)
		assert.Equal(t, adm.DeptID, doctorDept[adm.DoctorID])
		assert.False(t, adm.AdmissionDate.Before(cfg.StartDate))
		assert.True(t, adm.AdmissionDate.Before(end.AddDate(0, 0, 1)))

		if adm.Status == "Discharged" {
			require.NotNil(t, adm.DischargeDate)
			assert.False(t, adm.DischargeDate.Before(adm.AdmissionDate))
			assert.False(t, adm.DischargeDate.After(cfg.Now))
		} else {
			assert.Equal(t, "Active", adm.Status)
			assert.Nil(t, adm.DischargeDate)
		}
	}
}

func TestGenerate_BillingConsistency(t *testing.T) {
	ds := testDataset(t)

	require.Len(t, ds.Billing, len(ds.Admissions))

	procedureTotals := map[int]float64{}
	for _, pp := range ds.PatientProcedures {
		procedureTotals[pp.AdmissionID] += pp.Cost
	}

	for _, bill := range ds.Billing {
		itemized := bill.RoomCharges + bill.ProcedureCharges + bill.MedicineCharges + bill.LabCharges + bill.OtherCharges
		assert.InDelta(t, bill.TotalAmount, itemized, 0.001)
		// Procedure charges must reflect this admission's procedures only
		assert.InDelta(t, procedureTotals[bill.AdmissionID], bill.ProcedureCharges, 0.001)
	}
}

func TestGenerate_SelfPayHasNoInsuranceCoverage(t *testing.T) {
	ds := testDataset(t)

	insuranceByPatient := map[int]string{}
	for _, p := range ds.Patients {
		insuranceByPatient[p.ID] = p.InsuranceType
	}
	patientByAdmission := map[int]int{}
	for _, adm := range ds.Admissions {
		patientByAdmission[adm.ID] = adm.PatientID
	}

	for _, bill := range ds.Billing {
		if insuranceByPatient[patientByAdmission[bill.AdmissionID]] == "Self-Pay" {
			assert.Zero(t, bill.InsuranceCoverage)
		}
	}
}

func TestGenerate_OutcomesOnlyForDischarged(t *testing.T) {
	ds := testDataset(t)

	discharged := 0
	for _, adm := range ds.Admissions {
		if adm.Status == "Discharged" {
			discharged++
		}
	}
	require.Len(t, ds.Outcomes, discharged)

	dischargeByAdmission := map[int]time.Time{}
	for _, adm := range ds.Admissions {
		if adm.DischargeDate != nil {
			dischargeByAdmission[adm.ID] = *adm.DischargeDate
		}
	}
	for _, outcome := range ds.Outcomes {
		dischargeDate, ok := dischargeByAdmission[outcome.AdmissionID]
		require.True(t, ok, "outcome %d references an active admission", outcome.ID)
		assert.Equal(t, dischargeDate, outcome.OutcomeDate)
		assert.Contains(t, outcomeTypes, outcome.OutcomeType)
		// The generator records both flags together
		assert.Equal(t, outcome.ReadmissionFlag, outcome.ReadmissionWithin30)
	}
}

func TestGenerate_Occupancy(t *testing.T) {
	cfg := testConfig()
	ds := testDataset(t)

	require.Len(t, ds.Occupancy, cfg.Days*(len(ds.Branches)+len(ds.Departments)))

	for _, snap := range ds.Occupancy {
		assert.InDelta(t, float64(snap.OccupiedBeds)/float64(snap.TotalBeds)*100, snap.OccupancyRate, 0.001)
		if snap.DeptID == nil {
			// Branch-level rows split occupancy into ICU and general
			require.NotNil(t, snap.ICUOccupied)
			require.NotNil(t, snap.GeneralOccupied)
			assert.Equal(t, snap.OccupiedBeds, *snap.ICUOccupied+*snap.GeneralOccupied)
		} else {
			assert.Nil(t, snap.ICUOccupied)
			assert.Nil(t, snap.GeneralOccupied)
		}
	}
}

func TestGenerate_Alerts(t *testing.T) {
	cfg := testConfig()
	ds := testDataset(t)

	assert.GreaterOrEqual(t, len(ds.Alerts), 10)
	assert.LessOrEqual(t, len(ds.Alerts), 20)

	earliest := cfg.Now.AddDate(0, 0, -30)
	for _, alert := range ds.Alerts {
		assert.Equal(t, alertMessages[alert.AlertType], alert.Message)
		assert.Contains(t, alertSeverities, alert.Severity)
		assert.False(t, alert.AlertDate.Before(earliest))
		assert.False(t, alert.AlertDate.After(cfg.Now))
	}
}

func TestWeightedChoice_RespectsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0.65, 0.25, 0.07, 0.03}
	for i := 0; i < 1000; i++ {
		idx := weightedChoice(rng, weights)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(weights))
	}
}
