package intake

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MedicalAnalysis is the fixed schema the language model must fill for the
// diagnostic report. The PDF and email renderers rely on every field being
// populated, so parsing failures substitute a complete fallback object rather
// than passing partial data downstream.
type MedicalAnalysis struct {
	PatientSummary     string             `json:"patient_summary"`
	Explanation        string             `json:"explanation"`
	PossibleConditions []string           `json:"possible_conditions"`
	AIDiagnosticSummary DiagnosticSummary `json:"ai_diagnostic_summary"`
	SuggestedTests     SuggestedTests     `json:"suggested_tests"`
	RecommendedBasicTests []BasicTest     `json:"recommended_basic_tests"`
	DoctorRecommendation DoctorRecommendation `json:"doctor_recommendation"`
	LifestyleRecommendations []string     `json:"lifestyle_recommendations"`
	Precautions        []string           `json:"precautions"`
	SafetyPrecautions  []string           `json:"safety_precautions"`
	NextStepsChecklist []string           `json:"next_steps_checklist"`
	EmergencySigns     []string           `json:"emergency_signs"`
	Disclaimer         string             `json:"disclaimer"`
}

type DiagnosticSummary struct {
	Explanation        string   `json:"explanation"`
	PossibleConditions []string `json:"possible_conditions"`
	RiskInterpretation string   `json:"risk_interpretation"`
}

type SuggestedTests struct {
	BloodTests   []TestRecommendation `json:"blood_tests"`
	Imaging      []TestRecommendation `json:"imaging"`
	SpecialTests []TestRecommendation `json:"special_tests"`
}

type TestRecommendation struct {
	TestName string `json:"test_name"`
	Reason   string `json:"reason"`
}

type BasicTest struct {
	TestName string `json:"test_name"`
	Category string `json:"category"`
}

type DoctorRecommendation struct {
	SpecialistType       string `json:"specialist_type"`
	DoctorName           string `json:"doctor_name"`
	DoctorExpertise      string `json:"doctor_expertise"`
	ConsultationPriority string `json:"consultation_priority"`
	Reason               string `json:"reason"`
	AppointmentSlot      string `json:"appointment_slot,omitempty"`
}

// decodeAnalysis decodes model output into the report schema and verifies the
// fields the renderers depend on are present. Anything short of a complete
// object is an error; callers substitute the fallback.
func decodeAnalysis(raw string) (MedicalAnalysis, error) {
	var a MedicalAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &a); err != nil {
		return a, fmt.Errorf("decode analysis: %w", err)
	}
	switch {
	case strings.TrimSpace(a.PatientSummary) == "":
		return a, fmt.Errorf("decode analysis: patient_summary is empty")
	case len(a.PossibleConditions) == 0:
		return a, fmt.Errorf("decode analysis: possible_conditions is empty")
	case strings.TrimSpace(a.Disclaimer) == "":
		return a, fmt.Errorf("decode analysis: disclaimer is empty")
	case len(a.NextStepsChecklist) == 0:
		return a, fmt.Errorf("decode analysis: next_steps_checklist is empty")
	}
	return a, nil
}

// fallbackAnalysis builds a complete report object from the raw record when
// the model output cannot be used. Every schema field is populated.
func fallbackAnalysis(rec Record, assignedDoctor string) MedicalAnalysis {
	patientName := rec.String("name")
	if patientName == "" {
		patientName = "Patient"
	}
	symptoms := rec.String("symptoms")
	if symptoms == "" {
		symptoms = "N/A"
	}
	return MedicalAnalysis{
		PatientSummary: fmt.Sprintf("Medical assessment for %s based on reported symptoms.", patientName),
		Explanation:    "Please consult your assigned doctor for detailed analysis.",
		PossibleConditions: []string{"Further evaluation required"},
		AIDiagnosticSummary: DiagnosticSummary{
			Explanation:        fmt.Sprintf("Symptoms reported: %s.", symptoms),
			PossibleConditions: []string{"See doctor for diagnosis"},
			RiskInterpretation: "Risk level to be determined by physician.",
		},
		SuggestedTests: SuggestedTests{
			BloodTests:   []TestRecommendation{},
			Imaging:      []TestRecommendation{},
			SpecialTests: []TestRecommendation{},
		},
		RecommendedBasicTests: []BasicTest{
			{TestName: "Complete Blood Count (CBC)", Category: "BLOOD"},
		},
		DoctorRecommendation: DoctorRecommendation{
			SpecialistType:       assignedDoctor,
			DoctorName:           assignedDoctor,
			DoctorExpertise:      "General Medicine",
			ConsultationPriority: "Routine",
			Reason:               "Assigned based on reported symptoms.",
		},
		LifestyleRecommendations: []string{"Stay hydrated", "Rest adequately", "Monitor symptoms"},
		Precautions:              []string{"Avoid self-medication", "Consult doctor if symptoms worsen"},
		SafetyPrecautions:        []string{"Avoid strenuous activity", "Keep emergency contact handy"},
		NextStepsChecklist: []string{
			"Complete blood work before appointment",
			fmt.Sprintf("Share medical history with %s", assignedDoctor),
			"Monitor symptoms and log daily",
		},
		EmergencySigns: []string{"High fever (>104°F)", "Severe difficulty breathing"},
		Disclaimer:     "This AI-generated report is for informational purposes only.",
	}
}
