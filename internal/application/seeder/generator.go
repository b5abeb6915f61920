package seeder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
)

// Config controls the shape of a generated dataset
type Config struct {
	StartDate time.Time
	Days      int
	Patients  int
	// Now anchors the discharged/active split; admissions whose computed
	// discharge falls after Now stay active with a null discharge date.
	Now time.Time
}

// DefaultConfig seeds six months of history ending today
func DefaultConfig() Config {
	now := time.Now()
	return Config{
		StartDate: now.AddDate(0, 0, -180),
		Days:      180,
		Patients:  2000,
		Now:       now,
	}
}

// Dataset is a fully generated in-memory hospital dataset. IDs are assigned
// sequentially from 1 and all cross-references are internally consistent.
type Dataset struct {
	Branches          []entities.Branch
	Departments       []entities.Department
	Doctors           []entities.Doctor
	Patients          []entities.Patient
	Procedures        []entities.Procedure
	Admissions        []entities.Admission
	PatientProcedures []entities.PatientProcedure
	Billing           []entities.Billing
	Outcomes          []entities.Outcome
	Occupancy         []entities.BedOccupancySnapshot
	Alerts            []entities.ResourceAlert
}

// Generate builds a complete dataset from the vocabulary pools. The rng is
// the only source of randomness, so a fixed seed reproduces the dataset
// exactly.
func Generate(cfg Config, rng *rand.Rand) *Dataset {
	ds := &Dataset{}

	ds.generateBranches(rng)
	ds.generateDepartments(rng)
	ds.generateDoctors(rng)
	ds.generatePatients(cfg.Patients, rng)
	ds.generateProcedureCatalog()
	ds.generateAdmissions(cfg, rng)
	ds.generateOccupancy(cfg, rng)
	ds.generateAlerts(cfg, rng)

	return ds
}

func (ds *Dataset) generateBranches(rng *rand.Rand) {
	for i, name := range branchNames {
		totalBeds := randBetween(rng, 200, 400)
		icuBeds := int(float64(totalBeds) * 0.15)
		ds.Branches = append(ds.Branches, entities.Branch{
			ID:          i + 1,
			Name:        name,
			Location:    branchLocations[i],
			TotalBeds:   totalBeds,
			ICUBeds:     icuBeds,
			GeneralBeds: totalBeds - icuBeds,
		})
	}
}

func (ds *Dataset) generateDepartments(rng *rand.Rand) {
	id := 1
	for _, branch := range ds.Branches {
		for _, deptType := range deptTypes {
			ds.Departments = append(ds.Departments, entities.Department{
				ID:        id,
				Name:      deptType,
				Type:      deptType,
				BranchID:  branch.ID,
				TotalBeds: randBetween(rng, 30, 80),
			})
			id++
		}
	}
}

func (ds *Dataset) generateDoctors(rng *rand.Rand) {
	id := 1
	for _, dept := range ds.Departments {
		numDoctors := randBetween(rng, 3, 5)
		for i := 0; i < numDoctors; i++ {
			ds.Doctors = append(ds.Doctors, entities.Doctor{
				ID:          id,
				Name:        doctorNames[rng.Intn(len(doctorNames))],
				Specialty:   dept.Type,
				DeptID:      dept.ID,
				BranchID:    dept.BranchID,
				WeeklyHours: workingHourChoices[rng.Intn(len(workingHourChoices))],
			})
			id++
		}
	}
}

func (ds *Dataset) generatePatients(count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		first := patientFirstNames[rng.Intn(len(patientFirstNames))]
		last := patientLastNames[rng.Intn(len(patientLastNames))]
		ds.Patients = append(ds.Patients, entities.Patient{
			ID:            i + 1,
			Name:          first + " " + last,
			Age:           randBetween(rng, 1, 90),
			Gender:        genders[rng.Intn(len(genders))],
			InsuranceType: insuranceTypes[rng.Intn(len(insuranceTypes))],
			Contact:       fmt.Sprintf("+91%d", 7000000000+rng.Int63n(3000000000)),
		})
	}
}

// generateProcedureCatalog gives every department its own copy of the
// specialty catalog, so procedures at every branch resolve to a local
// department.
func (ds *Dataset) generateProcedureCatalog() {
	id := 1
	for _, dept := range ds.Departments {
		for _, spec := range proceduresByDeptType[dept.Type] {
			ds.Procedures = append(ds.Procedures, entities.Procedure{
				ID:              id,
				Name:            spec.Name,
				Type:            spec.Type,
				DeptID:          dept.ID,
				BaseCost:        spec.BaseCost,
				AvgDurationMins: spec.DurationMins,
			})
			id++
		}
	}
}

func (ds *Dataset) generateAdmissions(cfg Config, rng *rand.Rand) {
	doctorsByDept := map[int][]entities.Doctor{}
	for _, doc := range ds.Doctors {
		doctorsByDept[doc.DeptID] = append(doctorsByDept[doc.DeptID], doc)
	}
	proceduresByDept := map[int][]entities.Procedure{}
	for _, proc := range ds.Procedures {
		proceduresByDept[proc.DeptID] = append(proceduresByDept[proc.DeptID], proc)
	}

	admissionID := 1
	procedureID := 1
	billingID := 1
	outcomeID := 1

	for day := 0; day < cfg.Days; day++ {
		currentDate := cfg.StartDate.AddDate(0, 0, day)

		// Weekend effect: fewer admissions on Saturday and Sunday
		weekday := currentDate.Weekday()
		var perDay int
		if weekday == time.Saturday || weekday == time.Sunday {
			perDay = randBetween(rng, 8, 18)
		} else {
			perDay = randBetween(rng, 15, 30)
		}

		for n := 0; n < perDay; n++ {
			dept := ds.Departments[rng.Intn(len(ds.Departments))]
			patient := ds.Patients[rng.Intn(len(ds.Patients))]
			deptDoctors := doctorsByDept[dept.ID]
			doctor := deptDoctors[rng.Intn(len(deptDoctors))]

			admissionType := "Scheduled"
			if rng.Float64() < 0.35 {
				admissionType = "Emergency"
			}
			diagnoses := diagnosesByDeptType[dept.Type]

			admissionTime := currentDate.Add(
				time.Duration(rng.Intn(24))*time.Hour + time.Duration(rng.Intn(60))*time.Minute)

			losDays := losDayChoices[weightedChoice(rng, losDayWeights)]
			dischargeTime := admissionTime.AddDate(0, 0, losDays)

			status := "Active"
			var dischargeDate *time.Time
			if !dischargeTime.After(cfg.Now) {
				status = "Discharged"
				d := dischargeTime
				dischargeDate = &d
			}

			admission := entities.Admission{
				ID:                admissionID,
				PatientID:         patient.ID,
				BranchID:          dept.BranchID,
				DeptID:            dept.ID,
				DoctorID:          doctor.ID,
				AdmissionDate:     admissionTime,
				DischargeDate:     dischargeDate,
				AdmissionType:     admissionType,
				DiagnosisCategory: diagnoses[rng.Intn(len(diagnoses))],
				BedType:           bedTypes[weightedChoice(rng, bedTypeWeights)],
				BedNumber:         fmt.Sprintf("B-%d", randBetween(rng, 101, 499)),
				Status:            status,
			}
			ds.Admissions = append(ds.Admissions, admission)

			// Procedures for this admission
			var procedureCharges float64
			deptProcs := proceduresByDept[dept.ID]
			if len(deptProcs) > 0 {
				numProcedures := randBetween(rng, 1, 3)
				maxOffset := losDays
				if maxOffset > 3 {
					maxOffset = 3
				}
				for p := 0; p < numProcedures; p++ {
					proc := deptProcs[rng.Intn(len(deptProcs))]
					cost := proc.BaseCost * uniform(rng, 0.9, 1.2)
					procedureCharges += cost
					ds.PatientProcedures = append(ds.PatientProcedures, entities.PatientProcedure{
						ID:            procedureID,
						AdmissionID:   admission.ID,
						ProcedureID:   proc.ID,
						ProcedureDate: admissionTime.AddDate(0, 0, rng.Intn(maxOffset+1)),
						DoctorID:      doctor.ID,
						DurationMins:  proc.AvgDurationMins,
						Cost:          cost,
						Status:        "Completed",
					})
					procedureID++
				}
			}

			// Billing
			roomCharges := float64(losDays * randBetween(rng, 2000, 8000))
			medicineCharges := float64(losDays * randBetween(rng, 1000, 3000))
			labCharges := float64(randBetween(rng, 2000, 10000))
			otherCharges := float64(randBetween(rng, 1000, 5000))
			totalAmount := roomCharges + procedureCharges + medicineCharges + labCharges + otherCharges

			// TODO: discount factor should be uniform(0.0, 0.2); the current
			// range can exceed the bill and drive amount_paid negative.
			discount := totalAmount * uniform(rng, 0.9, 1.2)

			var insuranceCoverage float64
			if patient.InsuranceType != "Self-Pay" {
				insuranceCoverage = totalAmount * uniform(rng, 0.5, 0.8)
			}

			var amountPaid float64
			if status == "Discharged" {
				amountPaid = totalAmount - discount
			} else {
				amountPaid = totalAmount * uniform(rng, 0.3, 0.7)
			}
			paymentStatus := "Partial"
			if amountPaid >= totalAmount-discount-insuranceCoverage {
				paymentStatus = "Paid"
			}

			ds.Billing = append(ds.Billing, entities.Billing{
				ID:                billingID,
				AdmissionID:       admission.ID,
				TotalAmount:       totalAmount,
				RoomCharges:       roomCharges,
				ProcedureCharges:  procedureCharges,
				MedicineCharges:   medicineCharges,
				LabCharges:        labCharges,
				OtherCharges:      otherCharges,
				Discount:          discount,
				InsuranceCoverage: insuranceCoverage,
				AmountPaid:        amountPaid,
				PaymentStatus:     paymentStatus,
			})
			billingID++

			// Outcome for discharged stays only
			if status == "Discharged" {
				readmitted := rng.Float64() < 0.12
				ds.Outcomes = append(ds.Outcomes, entities.Outcome{
					ID:                  outcomeID,
					AdmissionID:         admission.ID,
					OutcomeType:         outcomeTypes[weightedChoice(rng, outcomeWeights)],
					OutcomeDate:         *dischargeDate,
					ReadmissionFlag:     readmitted,
					ReadmissionWithin30: readmitted,
				})
				outcomeID++
			}

			admissionID++
		}
	}
}

func (ds *Dataset) generateOccupancy(cfg Config, rng *rand.Rand) {
	id := 1
	for day := 0; day < cfg.Days; day++ {
		currentDate := cfg.StartDate.AddDate(0, 0, day)

		for _, branch := range ds.Branches {
			occupied := int(float64(branch.TotalBeds) * uniform(rng, 0.60, 0.95))
			icuOccupied := int(float64(occupied) * uniform(rng, 0.10, 0.20))
			generalOccupied := occupied - icuOccupied
			ds.Occupancy = append(ds.Occupancy, entities.BedOccupancySnapshot{
				ID:              id,
				BranchID:        branch.ID,
				SnapshotDate:    currentDate,
				SnapshotHour:    12,
				TotalBeds:       branch.TotalBeds,
				OccupiedBeds:    occupied,
				OccupancyRate:   float64(occupied) / float64(branch.TotalBeds) * 100,
				ICUOccupied:     &icuOccupied,
				GeneralOccupied: &generalOccupied,
			})
			id++
		}

		for _, dept := range ds.Departments {
			occupied := int(float64(dept.TotalBeds) * uniform(rng, 0.55, 0.92))
			deptID := dept.ID
			ds.Occupancy = append(ds.Occupancy, entities.BedOccupancySnapshot{
				ID:            id,
				BranchID:      dept.BranchID,
				DeptID:        &deptID,
				SnapshotDate:  currentDate,
				SnapshotHour:  12,
				TotalBeds:     dept.TotalBeds,
				OccupiedBeds:  occupied,
				OccupancyRate: float64(occupied) / float64(dept.TotalBeds) * 100,
			})
			id++
		}
	}
}

func (ds *Dataset) generateAlerts(cfg Config, rng *rand.Rand) {
	numAlerts := randBetween(rng, 10, 20)
	for i := 0; i < numAlerts; i++ {
		branch := ds.Branches[rng.Intn(len(ds.Branches))]
		var deptID *int
		if rng.Float64() > 0.3 {
			id := ds.Departments[rng.Intn(len(ds.Departments))].ID
			deptID = &id
		}
		alertType := alertTypes[rng.Intn(len(alertTypes))]
		ds.Alerts = append(ds.Alerts, entities.ResourceAlert{
			ID:        i + 1,
			BranchID:  branch.ID,
			DeptID:    deptID,
			AlertType: alertType,
			Severity:  alertSeverities[rng.Intn(len(alertSeverities))],
			Message:   alertMessages[alertType],
			AlertDate: cfg.Now.AddDate(0, 0, -rng.Intn(31)),
			Resolved:  rng.Float64() > 0.4,
		})
	}
}

// randBetween returns a random int in [lo, hi]
func randBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// uniform returns a random float64 in [lo, hi)
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// weightedChoice returns an index drawn with the given weights
func weightedChoice(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
