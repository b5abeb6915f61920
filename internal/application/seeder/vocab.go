package seeder

// procedureSpec describes one catalog entry for a specialty
type procedureSpec struct {
	Name         string
	Type         string
	BaseCost     float64
	DurationMins int
}

var branchNames = []string{
	"Mumbai Central Hospital", "Delhi Metro Medical Center",
	"Bangalore Healthcare Hub", "Chennai Regional Hospital",
}

var branchLocations = []string{
	"Andheri West, Mumbai", "Connaught Place, New Delhi",
	"Whitefield, Bangalore", "T. Nagar, Chennai",
}

var deptTypes = []string{
	"Cardiology", "Oncology", "Orthopedics", "Pediatrics", "Emergency", "General Medicine",
}

var doctorNames = []string{
	"Dr. Rajesh Kumar", "Dr. Priya Sharma", "Dr. Amit Patel", "Dr. Sneha Reddy",
	"Dr. Vikram Singh", "Dr. Anjali Gupta", "Dr. Sanjay Desai", "Dr. Kavita Rao",
	"Dr. Rahul Verma", "Dr. Meera Iyer", "Dr. Arun Nair", "Dr. Pooja Menon",
	"Dr. Suresh Bhat", "Dr. Divya Krishnan", "Dr. Harish Joshi", "Dr. Nisha Shah",
}

var patientFirstNames = []string{
	"Arjun", "Priya", "Rahul", "Anjali", "Vikram", "Sneha", "Aditya", "Kavya",
	"Rohan", "Ishita", "Karthik", "Meera", "Siddharth", "Pooja", "Nikhil", "Divya",
}

var patientLastNames = []string{
	"Sharma", "Patel", "Kumar", "Reddy", "Singh", "Gupta", "Rao", "Iyer",
	"Nair", "Desai", "Verma", "Menon", "Bhat", "Joshi", "Shah", "Krishnan",
}

var insuranceTypes = []string{"Government", "Private", "Self-Pay", "Corporate"}

var genders = []string{"Male", "Female", "Other"}

var diagnosesByDeptType = map[string][]string{
	"Cardiology":       {"Acute Myocardial Infarction", "Heart Failure", "Arrhythmia", "Hypertension Crisis", "Coronary Artery Disease"},
	"Oncology":         {"Breast Cancer", "Lung Cancer", "Colorectal Cancer", "Leukemia", "Lymphoma"},
	"Orthopedics":      {"Hip Fracture", "Knee Replacement", "Spinal Injury", "Sports Injury", "Arthritis"},
	"Pediatrics":       {"Pneumonia", "Viral Fever", "Gastroenteritis", "Asthma", "Dehydration"},
	"Emergency":        {"Trauma", "Poisoning", "Acute Abdomen", "Head Injury", "Burns"},
	"General Medicine": {"Diabetes", "Respiratory Infection", "Gastritis", "Fever", "Hypertension"},
}

var proceduresByDeptType = map[string][]procedureSpec{
	"Cardiology": {
		{"Angioplasty", "Surgery", 180000, 120},
		{"ECG", "Diagnostic", 1500, 30},
		{"Echocardiogram", "Diagnostic", 3500, 45},
		{"Cardiac Catheterization", "Diagnostic", 50000, 90},
	},
	"Oncology": {
		{"Chemotherapy Session", "Therapeutic", 45000, 240},
		{"Radiation Therapy", "Therapeutic", 35000, 60},
		{"Biopsy", "Diagnostic", 15000, 45},
		{"PET Scan", "Diagnostic", 25000, 90},
	},
	"Orthopedics": {
		{"Hip Replacement", "Surgery", 250000, 180},
		{"Knee Arthroscopy", "Surgery", 120000, 90},
		{"Fracture Fixation", "Surgery", 80000, 120},
		{"X-Ray", "Diagnostic", 800, 15},
	},
	"Pediatrics": {
		{"Vaccination", "Therapeutic", 500, 15},
		{"Blood Test", "Diagnostic", 1200, 30},
		{"Nebulization", "Therapeutic", 800, 30},
		{"IV Fluid Administration", "Therapeutic", 2000, 60},
	},
	"Emergency": {
		{"Trauma Surgery", "Emergency", 150000, 240},
		{"Emergency Stabilization", "Emergency", 25000, 60},
		{"CT Scan", "Diagnostic", 8000, 45},
		{"Emergency Suturing", "Emergency", 5000, 30},
	},
	"General Medicine": {
		{"Blood Test Panel", "Diagnostic", 2500, 30},
		{"Ultrasound", "Diagnostic", 2000, 30},
		{"IV Antibiotic", "Therapeutic", 3000, 60},
		{"Consultation", "Diagnostic", 800, 30},
	},
}

var outcomeTypes = []string{"Recovered", "Improved", "Transferred", "Deceased"}
var outcomeWeights = []float64{0.65, 0.25, 0.07, 0.03}

var losDayChoices = []int{1, 2, 3, 4, 5, 6, 7, 10, 14}
var losDayWeights = []float64{0.05, 0.15, 0.20, 0.18, 0.15, 0.10, 0.08, 0.06, 0.03}

var bedTypes = []string{"ICU", "General", "Private", "Semi-Private"}
var bedTypeWeights = []float64{0.15, 0.50, 0.20, 0.15}

var workingHourChoices = []int{40, 48, 50, 60}

var alertTypes = []string{"Bed_Shortage", "Staff_Shortage", "Equipment_Shortage", "High_Occupancy"}
var alertSeverities = []string{"Low", "Medium", "High", "Critical"}
var alertMessages = map[string]string{
	"Bed_Shortage":       "ICU beds running low - only 2 available",
	"Staff_Shortage":     "Insufficient nursing staff for night shift",
	"Equipment_Shortage": "Ventilator availability critical",
	"High_Occupancy":     "Department occupancy exceeds 90%",
}
