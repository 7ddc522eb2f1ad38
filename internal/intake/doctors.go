package intake

import "strings"

// specialistRule maps symptom keywords to the doctor handling that area.
// Rules are checked in order, so cardiac symptoms win over overlapping terms.
type specialistRule struct {
	keywords []string
	doctor   string
}

var specialistRules = []specialistRule{
	{[]string{"chest", "heart", "palpitation", "breath", "breathing"}, "Dr. Aditi Sharma (Cardiologist)"},
	{[]string{"skin", "rash", "itch", "acne", "allergy"}, "Dr. Rajesh Gupta (Dermatologist)"},
	{[]string{"child", "baby", "infant", "kid", "fever in child"}, "Dr. Sneha Patil (Pediatrician)"},
	{[]string{"sugar", "diabetes", "thyroid", "weight gain", "fatigue"}, "Dr. Meera Rao (Endocrinologist)"},
	{[]string{"bone", "joint", "knee", "back pain", "spine", "fracture"}, "Dr. Sanjay Mehta (Orthopedic)"},
	{[]string{"stomach", "abdomen", "digestion", "vomiting", "diarrhea", "nausea"}, "Dr. Priya Nair (Gastroenterologist)"},
	{[]string{"headache", "migraine", "brain", "nerves", "seizure", "memory"}, "Dr. Kiran Kumar (Neurologist)"},
	{[]string{"eye", "vision", "blur", "sight"}, "Dr. Ananya Joshi (Ophthalmologist)"},
	{[]string{"ear", "nose", "throat", "ent", "hearing", "tonsil"}, "Dr. Ravi Verma (ENT Specialist)"},
}

const fallbackDoctor = "Dr. Arun Kumar (General Physician)"

// AssignDoctor picks the specialist whose keyword set first matches the
// reported symptoms. Unmatched symptoms go to the general physician.
func AssignDoctor(symptoms string) string {
	s := strings.ToLower(symptoms)
	for _, rule := range specialistRules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.doctor
			}
		}
	}
	return fallbackDoctor
}
