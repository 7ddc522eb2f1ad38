package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"patient-intake-agent/internal/platform/metrics"
)

// Synthesizer builds the final medical assessment report from a completed
// record. Model failures never surface to the caller; the fallback analysis
// keeps the downstream PDF and email rendering working.
type Synthesizer struct {
	llm TextGenerator
	log zerolog.Logger
	now func() time.Time
}

func NewSynthesizer(llm TextGenerator, log zerolog.Logger) *Synthesizer {
	return &Synthesizer{llm: llm, log: log, now: time.Now}
}

// Synthesize generates the structured analysis and wraps it into a Report.
// The assigned doctor and selected slot are always re-injected afterwards so
// the report never shows a blank doctor even when the model improvises.
func (s *Synthesizer) Synthesize(ctx context.Context, rec Record) Report {
	assignedDoctor := AssignDoctor(rec.String("symptoms"))
	selectedSlot := rec.String("selected_slot")
	if selectedSlot == "" {
		selectedSlot = "To be confirmed"
	}
	patientName := rec.String("name")
	if patientName == "" {
		patientName = "Patient"
	}

	analysis, err := s.generate(ctx, rec, assignedDoctor, selectedSlot, patientName)
	if err != nil {
		s.log.Warn().Err(err).Msg("report synthesis failed, using fallback analysis")
		analysis = fallbackAnalysis(rec, assignedDoctor)
		metrics.RecordReportGenerated("fallback")
	} else {
		metrics.RecordReportGenerated("llm")
	}

	analysis.DoctorRecommendation.DoctorName = assignedDoctor
	analysis.DoctorRecommendation.AppointmentSlot = selectedSlot

	return Report{
		Title:           "Medical Assessment Report",
		GeneratedBy:     "Amrutha AI",
		PatientData:     rec,
		MedicalAnalysis: analysis,
		Timestamp:       s.now(),
	}
}

func (s *Synthesizer) generate(ctx context.Context, rec Record, assignedDoctor, selectedSlot, patientName string) (MedicalAnalysis, error) {
	prompt := s.buildPrompt(rec, assignedDoctor, selectedSlot, patientName)

	raw, err := s.llm.Generate(ctx, prompt, GenerateOptions{Temperature: 0.3, MaxTokens: 2000, JSONMode: true})
	if err != nil {
		return MedicalAnalysis{}, err
	}
	return decodeAnalysis(extractJSONObject(raw))
}

// extractJSONObject strips markdown fences and any chatter around the first
// top-level JSON object in the model output.
func extractJSONObject(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}

func (s *Synthesizer) buildPrompt(rec Record, assignedDoctor, selectedSlot, patientName string) string {
	field := func(key, fallback string) string {
		if v := rec.String(key); v != "" {
			return v
		}
		return fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a Senior Medical AI Consultant. Analyze the patient profile below and generate a fully structured, clinically accurate medical assessment report.

PATIENT PROFILE:
- Name: %s
- Age: %s | Gender: %s
- Location: %s
- Weight: %s kg | Blood Group: %s
- Relation: %s

CLINICAL DATA:
- Primary Symptoms: %s
- Duration: %s
- BP / Hypertension history: %s
- Diabetes / Sugar history: %s
- Thyroid history: %s
- Past Surgeries: %s
- Current Medications: %s
- Assigned Doctor: %s
- Appointment Slot: %s

STRICT INSTRUCTIONS:
1. Every field MUST be filled with real, clinically relevant content based on the patient's symptoms.
2. Do NOT leave any array empty. Provide at least 2-3 items per list.
3. Output ONLY valid JSON, no markdown, no commentary.
4. Use simple, patient-friendly language (no unnecessary jargon).

`,
		field("name", "N/A"), field("age", "N/A"), field("gender", "N/A"),
		field("location", "N/A"), field("weight", "N/A"), field("blood_group", "N/A"),
		field("patient_relation", "Self"),
		field("symptoms", "N/A"), field("duration", "N/A"),
		field("bp_history", "N/A"), field("sugar_history", "N/A"), field("thyroid_history", "N/A"),
		field("surgeries", "None"), field("medications", "None"),
		assignedDoctor, selectedSlot)

	fmt.Fprintf(&b, `OUTPUT JSON SCHEMA (fill ALL fields):
{
  "patient_summary": "2-3 sentence clinical summary of the patient's condition, named after %[1]s.",
  "explanation": "Detailed clinical reasoning for the diagnosis and treatment approach (3-5 sentences).",
  "possible_conditions": ["Condition 1", "Condition 2", "Condition 3"],
  "ai_diagnostic_summary": {
    "explanation": "AI analysis of the symptoms and probable diagnosis (2-3 sentences).",
    "possible_conditions": ["Differential 1", "Differential 2", "Differential 3"],
    "risk_interpretation": "Risk level explanation (e.g., Moderate risk, requires prompt evaluation)."
  },
  "suggested_tests": {
    "blood_tests": [{"test_name": "Test Name", "reason": "Why needed"}],
    "imaging": [{"test_name": "Test Name", "reason": "Why needed"}],
    "special_tests": [{"test_name": "Test Name", "reason": "Why needed"}]
  },
  "recommended_basic_tests": [
    {"test_name": "Test Name", "category": "Category (e.g., FASTING / AMBULATORY / URINE)"},
    {"test_name": "Test Name", "category": "Category"}
  ],
  "doctor_recommendation": {
    "specialist_type": "Specialist type (e.g., Cardiologist)",
    "doctor_name": "%[2]s",
    "doctor_expertise": "Area of expertise matching symptoms",
    "consultation_priority": "Routine / Urgent / Emergency",
    "reason": "Why this specialist is recommended for these symptoms."
  },
  "lifestyle_recommendations": ["Specific recommendation 1", "Specific recommendation 2", "Specific recommendation 3"],
  "precautions": ["Immediate precaution 1", "Immediate precaution 2", "Immediate precaution 3"],
  "safety_precautions": ["Safety guideline 1", "Safety guideline 2", "Safety guideline 3"],
  "next_steps_checklist": [
    "Complete required blood tests before appointment",
    "Share full medical history with %[2]s via the portal",
    "Monitor and log symptoms daily until appointment",
    "Avoid strenuous activity until evaluation is complete"
  ],
  "emergency_signs": ["Emergency warning sign 1 specific to the symptoms", "Emergency warning sign 2 specific to the symptoms"],
  "disclaimer": "This AI-generated report is for preliminary informational purposes only and does not replace professional medical advice. Please consult %[2]s for a complete clinical evaluation."
}`, patientName, assignedDoctor)

	return b.String()
}
