package intake

import "testing"

func TestAssignDoctor(t *testing.T) {
	cases := []struct {
		symptoms string
		want     string
	}{
		{"chest pain and shortness of breath", "Dr. Aditi Sharma (Cardiologist)"},
		{"itchy rash on arms", "Dr. Rajesh Gupta (Dermatologist)"},
		{"my baby has a cough", "Dr. Sneha Patil (Pediatrician)"},
		{"high sugar and fatigue", "Dr. Meera Rao (Endocrinologist)"},
		{"knee pain after a fall", "Dr. Sanjay Mehta (Orthopedic)"},
		{"vomiting and stomach cramps", "Dr. Priya Nair (Gastroenterologist)"},
		{"recurring migraine", "Dr. Kiran Kumar (Neurologist)"},
		{"blurred vision", "Dr. Ananya Joshi (Ophthalmologist)"},
		{"sore throat and ear ache", "Dr. Ravi Verma (ENT Specialist)"},
		{"just feeling unwell", "Dr. Arun Kumar (General Physician)"},
		{"", "Dr. Arun Kumar (General Physician)"},
	}
	for _, tc := range cases {
		if got := AssignDoctor(tc.symptoms); got != tc.want {
			t.Errorf("AssignDoctor(%q) = %q, want %q", tc.symptoms, got, tc.want)
		}
	}
}

func TestAssignDoctor_OrderPrecedence(t *testing.T) {
	// Cardiac keywords are checked before endocrine, so mixed symptoms
	// route to cardiology.
	got := AssignDoctor("chest discomfort with fatigue")
	if got != "Dr. Aditi Sharma (Cardiologist)" {
		t.Errorf("mixed symptoms routed to %q, want cardiologist", got)
	}
}
