package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubLLM answers extraction prompts with a direct field mapping and report
// prompts with a minimal valid analysis.
type stubLLM struct {
	failExtraction bool
	failReport     bool
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ GenerateOptions) (string, error) {
	if strings.HasPrefix(prompt, "EXTRACT") {
		if s.failExtraction {
			return "", fmt.Errorf("model unavailable")
		}
		// Echo the asked field back as structured data.
		start := strings.Index(prompt, "about \"") + len("about \"")
		end := strings.Index(prompt[start:], "\"") + start
		field := prompt[start:end]
		start = strings.Index(prompt, "said \"") + len("said \"")
		end = strings.Index(prompt[start:], "\"") + start
		value := prompt[start:end]
		out, _ := json.Marshal(map[string]string{field: value})
		return string(out), nil
	}
	if s.failReport {
		return "not json at all", nil
	}
	analysis := MedicalAnalysis{
		PatientSummary:     "Stable adult patient with chest pain.",
		Explanation:        "Likely musculoskeletal, cardiac causes must be excluded.",
		PossibleConditions: []string{"Costochondritis", "Angina"},
		NextStepsChecklist: []string{"Complete ECG before appointment"},
		Disclaimer:         "Informational only.",
	}
	out, _ := json.Marshal(analysis)
	return string(out), nil
}

type stubTTS struct {
	calls []string
}

func (s *stubTTS) Synthesize(_ context.Context, text, _ string) string {
	s.calls = append(s.calls, text)
	return "QUJD" // static base64 payload
}

type stubDispatcher struct {
	dispatched []Report
	summary    DispatchSummary
}

func (s *stubDispatcher) DispatchReport(_ context.Context, report Report) DispatchSummary {
	s.dispatched = append(s.dispatched, report)
	return s.summary
}

func newTestService(llm *stubLLM, tts *stubTTS, disp *stubDispatcher) Service {
	log := zerolog.Nop()
	return NewService(NewExtractor(llm, log), NewSynthesizer(llm, log), tts, disp, log)
}

func completedRecord() Record {
	rec := adultRecord()
	rec["bp_history"] = "No"
	rec["sugar_history"] = "No"
	rec["surgeries"] = "None"
	rec["medications"] = "None"
	rec["assigned_doctor"] = "Yes, proceed"
	rec["selected_slot"] = "Morning (9 AM – 12 PM)"
	return rec
}

func TestProcessTurn_InvalidAnswerRepeatsField(t *testing.T) {
	svc := newTestService(&stubLLM{}, &stubTTS{}, &stubDispatcher{})

	rec := Record{"patient_relation": "Self", "name": "Asha", "age": "30", "gender": "Female"}
	result := svc.ProcessTurn(context.Background(), rec, "12345", "phone")

	if result.Step.FieldKey != "phone" {
		t.Errorf("invalid phone should repeat phone, got %q", result.Step.FieldKey)
	}
	if result.ErrorMsg == "" {
		t.Error("expected validation error message")
	}
	if !result.Record.Missing("phone") {
		t.Error("invalid answer must not be stored")
	}
}

func TestProcessTurn_ValidAnswerAdvances(t *testing.T) {
	tts := &stubTTS{}
	svc := newTestService(&stubLLM{}, tts, &stubDispatcher{})

	rec := Record{"patient_relation": "Self"}
	result := svc.ProcessTurn(context.Background(), rec, "Asha Rao", "name")

	if result.Record.String("name") != "Asha Rao" {
		t.Errorf("name not stored, record %v", result.Record)
	}
	if result.Step.FieldKey != "age" {
		t.Errorf("next field = %q, want age", result.Step.FieldKey)
	}
	if result.TTSAudio == "" {
		t.Error("question should carry tts audio")
	}
}

func TestProcessTurn_ExtractionFailureStoresRawAnswer(t *testing.T) {
	svc := newTestService(&stubLLM{failExtraction: true}, &stubTTS{}, &stubDispatcher{})

	rec := Record{"patient_relation": "Self", "name": "Asha"}
	result := svc.ProcessTurn(context.Background(), rec, "30", "age")

	if result.Record.String("age") != "30" {
		t.Errorf("raw answer not stored on extraction failure, record %v", result.Record)
	}
}

func TestProcessTurn_PaymentCompletesAndDispatches(t *testing.T) {
	tts := &stubTTS{}
	disp := &stubDispatcher{summary: DispatchSummary{PDF: ChannelResult{OK: true}, Email: ChannelResult{OK: true}}}
	svc := newTestService(&stubLLM{}, tts, disp)

	result := svc.ProcessTurn(context.Background(), completedRecord(), "I have paid", "payment_status")

	if !result.Step.Complete {
		t.Fatal("paid record should complete the intake")
	}
	if result.Step.FieldKey != "complete" {
		t.Errorf("field_key = %q, want complete", result.Step.FieldKey)
	}
	if result.Report == nil {
		t.Fatal("completion must include a report")
	}
	if result.Report.Title != "Medical Assessment Report" {
		t.Errorf("report title = %q", result.Report.Title)
	}
	if got := result.Report.MedicalAnalysis.DoctorRecommendation.DoctorName; got != "Dr. Aditi Sharma (Cardiologist)" {
		t.Errorf("doctor not injected into report, got %q", got)
	}
	if len(disp.dispatched) != 1 {
		t.Fatalf("dispatcher called %d times, want 1", len(disp.dispatched))
	}
	if len(tts.calls) == 0 || !strings.Contains(tts.calls[len(tts.calls)-1], "collected all necessary details") {
		t.Errorf("completion message not spoken, calls %v", tts.calls)
	}
}

func TestProcessTurn_ReportParseFailureUsesFallback(t *testing.T) {
	disp := &stubDispatcher{summary: DispatchSummary{PDF: ChannelResult{OK: true}, Email: ChannelResult{OK: true}}}
	svc := newTestService(&stubLLM{failReport: true}, &stubTTS{}, disp)

	result := svc.ProcessTurn(context.Background(), completedRecord(), "paid", "payment_status")

	if result.Report == nil {
		t.Fatal("completion must include a report even when synthesis fails")
	}
	analysis := result.Report.MedicalAnalysis
	if analysis.Disclaimer == "" || len(analysis.NextStepsChecklist) == 0 {
		t.Errorf("fallback analysis incomplete: %+v", analysis)
	}
	if analysis.DoctorRecommendation.AppointmentSlot != "Morning (9 AM – 12 PM)" {
		t.Errorf("slot not injected, got %q", analysis.DoctorRecommendation.AppointmentSlot)
	}
}

func TestProcessTurn_FirstTurnAsksRelation(t *testing.T) {
	svc := newTestService(&stubLLM{}, &stubTTS{}, &stubDispatcher{})

	result := svc.ProcessTurn(context.Background(), nil, "", "")
	if result.Step.FieldKey != "patient_relation" {
		t.Errorf("first question = %q, want patient_relation", result.Step.FieldKey)
	}
}
