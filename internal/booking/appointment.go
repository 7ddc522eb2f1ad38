package booking

import (
	"strings"
	"time"
)

// Appointment is the confirmed booking sent to the patient and embedded in
// the report PDF.
type Appointment struct {
	AppointmentID    string `json:"appointment_id"`
	PatientName      string `json:"patient_name"`
	PatientEmail     string `json:"patient_email"`
	PatientPhone     string `json:"patient_phone"`
	DoctorName       string `json:"doctor_name"`
	DoctorSpecialist string `json:"doctor_specialist"`
	Expertise        string `json:"expertise"`
	AppointmentTime  string `json:"appointment_time"`
	Urgency          string `json:"urgency"`
	Status           string `json:"status"`
	ConsultationType string `json:"consultation_type"`
}

// NewAppointmentID builds a timestamped booking reference.
func NewAppointmentID(now time.Time) string {
	return "APT-" + now.Format("20060102150405")
}

// AppointmentTimeFor derives a concrete consultation time from the triage
// urgency when the patient did not pick a slot. High urgency lands within
// hours, medium within days, everything else within the week.
func AppointmentTimeFor(urgency string, now time.Time) string {
	var at time.Time
	switch urgency {
	case "High":
		at = now.Add(2 * time.Hour)
	case "Medium":
		at = now.AddDate(0, 0, 2)
	default:
		at = now.AddDate(0, 0, 5)
	}
	return at.Format("2006-01-02 15:04")
}

// specialtyRoster holds the selectable doctors per specialty. The picker is
// injected so bookings are reproducible in tests.
var specialtyRoster = map[string][]string{
	"Cardiologist": {
		"Dr. Rajesh Kumar (MD, DM Cardiology)",
		"Dr. Priya Sharma (MBBS, MD Cardiology)",
		"Dr. Amit Patel (MD, FACC)",
		"Dr. Sunita Reddy (DM Cardiology)",
	},
	"Endocrinologist": {
		"Dr. Suresh Menon (MD, DM Endocrinology)",
		"Dr. Kavita Singh (MBBS, MD Endocrinology)",
		"Dr. Arun Desai (DM Endocrinology)",
	},
	"Neurologist": {
		"Dr. Vikram Rao (MD, DM Neurology)",
		"Dr. Anjali Gupta (MBBS, MD Neurology)",
		"Dr. Ramesh Iyer (DM Neurology)",
	},
	"Orthopedic": {
		"Dr. Karthik Nair (MS Orthopedics)",
		"Dr. Deepa Joshi (MS Orthopedics)",
		"Dr. Sanjay Verma (MS Orthopedics)",
	},
	"Gastroenterologist": {
		"Dr. Mahesh Kulkarni (MD, DM Gastroenterology)",
		"Dr. Sneha Kapoor (DM Gastroenterology)",
		"Dr. Ravi Krishnan (MD Gastroenterology)",
	},
	"Pulmonologist": {
		"Dr. Ashok Mehta (MD Pulmonology)",
		"Dr. Pooja Agarwal (MD Respiratory Medicine)",
		"Dr. Harish Pillai (DM Pulmonology)",
	},
	"General Physician": {
		"Dr. Arjun Sharma (MBBS, MD)",
		"Dr. Meera Nambiar (MBBS, MD)",
		"Dr. Rahul Bansal (MBBS, MD)",
		"Dr. Lakshmi Iyer (MBBS, MD)",
	},
}

// Picker chooses an index into a roster of the given size.
type Picker func(n int) int

// RosterDoctor returns a doctor matching the specialist type, falling back
// to the general physician roster when no specialty matches.
func RosterDoctor(specialistType string, pick Picker) string {
	lower := strings.ToLower(specialistType)
	for specialty, doctors := range specialtyRoster {
		if strings.Contains(lower, strings.ToLower(specialty)) {
			return doctors[pick(len(doctors))]
		}
	}
	doctors := specialtyRoster["General Physician"]
	return doctors[pick(len(doctors))]
}
