package booking

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"patient-intake-agent/internal/intake"
)

type stubPDF struct {
	fail  bool
	calls int
}

func (s *stubPDF) Generate(_ intake.Record, _ intake.MedicalAnalysis, _ Appointment) ([]byte, error) {
	s.calls++
	if s.fail {
		return nil, fmt.Errorf("font missing")
	}
	return []byte("%PDF-1.4"), nil
}

type stubMailer struct {
	fail       bool
	recipients []string
	lastPDF    []byte
}

func (s *stubMailer) SendAppointmentEmail(_ context.Context, patientEmail, _ string, _ Appointment, pdf []byte) error {
	if s.fail {
		return fmt.Errorf("smtp unreachable")
	}
	s.recipients = append(s.recipients, patientEmail)
	s.lastPDF = pdf
	return nil
}

func (s *stubMailer) SendWelcomeEmail(_ context.Context, patientEmail, _ string) error {
	if s.fail {
		return fmt.Errorf("smtp unreachable")
	}
	s.recipients = append(s.recipients, patientEmail)
	return nil
}

type stubTTS struct{ audio string }

func (s *stubTTS) Synthesize(_ context.Context, _, _ string) string { return s.audio }

func fixedTime() time.Time {
	return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
}

func newTestBooking(pdf *stubPDF, mail *stubMailer) *service {
	return &service{
		pdf:  pdf,
		mail: mail,
		tts:  &stubTTS{audio: "QUJD"},
		log:  zerolog.Nop(),
		now:  fixedTime,
		pick: func(int) int { return 0 },
	}
}

func sampleAnalysis() intake.MedicalAnalysis {
	return intake.MedicalAnalysis{
		DoctorRecommendation: intake.DoctorRecommendation{
			SpecialistType:       "Cardiologist",
			DoctorName:           "Dr. Aditi Sharma (Cardiologist)",
			DoctorExpertise:      "Cardiac care",
			ConsultationPriority: "High",
		},
	}
}

func TestBook_AssemblesAppointment(t *testing.T) {
	pdf := &stubPDF{}
	mail := &stubMailer{}
	svc := newTestBooking(pdf, mail)

	patient := intake.Record{
		"name":          "Asha Rao",
		"email":         "asha@example.com",
		"phone":         "9876543210",
		"selected_slot": "Morning (9 AM – 12 PM)",
	}
	result, err := svc.Book(context.Background(), patient, sampleAnalysis())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	appt := result.Appointment
	if appt.AppointmentID != "APT-20260314103000" {
		t.Errorf("appointment id = %q", appt.AppointmentID)
	}
	if appt.DoctorName != "Dr. Aditi Sharma (Cardiologist)" {
		t.Errorf("doctor = %q", appt.DoctorName)
	}
	if appt.AppointmentTime != "Morning (9 AM – 12 PM)" {
		t.Errorf("time = %q, want the selected slot", appt.AppointmentTime)
	}
	if appt.Status != "Confirmed" || appt.ConsultationType != "Online Consultation" {
		t.Errorf("unexpected status fields: %+v", appt)
	}
	if !result.EmailSent {
		t.Error("email should be marked sent")
	}
	if len(mail.recipients) != 1 || mail.recipients[0] != "asha@example.com" {
		t.Errorf("recipients = %v", mail.recipients)
	}
	if string(mail.lastPDF) != "%PDF-1.4" {
		t.Error("pdf attachment not forwarded to mailer")
	}
	if result.TTSAudio != "QUJD" {
		t.Errorf("tts audio = %q", result.TTSAudio)
	}
}

func TestBook_NoSlotFallsBackToUrgencyTime(t *testing.T) {
	svc := newTestBooking(&stubPDF{}, &stubMailer{})

	patient := intake.Record{"name": "Asha Rao", "email": "asha@example.com"}
	analysis := sampleAnalysis()

	result, err := svc.Book(context.Background(), patient, analysis)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	// High urgency books two hours out.
	if result.Appointment.AppointmentTime != "2026-03-14 12:30" {
		t.Errorf("time = %q", result.Appointment.AppointmentTime)
	}
}

func TestBook_RosterFallbackWhenNoDoctor(t *testing.T) {
	svc := newTestBooking(&stubPDF{}, &stubMailer{})

	analysis := sampleAnalysis()
	analysis.DoctorRecommendation.DoctorName = ""

	result, err := svc.Book(context.Background(), intake.Record{"email": "a@b.co"}, analysis)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if result.Appointment.DoctorName != "Dr. Rajesh Kumar (MD, DM Cardiology)" {
		t.Errorf("roster doctor = %q", result.Appointment.DoctorName)
	}
}

func TestBook_ChannelFailuresDoNotFailBooking(t *testing.T) {
	svc := newTestBooking(&stubPDF{fail: true}, &stubMailer{fail: true})

	result, err := svc.Book(context.Background(), intake.Record{"email": "a@b.co"}, sampleAnalysis())
	if err != nil {
		t.Fatalf("Book should not fail on channel errors: %v", err)
	}
	if result.EmailSent {
		t.Error("email_sent should be false when smtp fails")
	}
	if result.Appointment.AppointmentID == "" {
		t.Error("appointment must still be assembled")
	}
}

func TestDispatchReport_ReportsPerChannelOutcome(t *testing.T) {
	pdf := &stubPDF{fail: true}
	mail := &stubMailer{}
	svc := newTestBooking(pdf, mail)

	report := intake.Report{
		PatientData:     intake.Record{"name": "Asha Rao", "email": "asha@example.com", "selected_slot": "Evening (5 PM – 8 PM)"},
		MedicalAnalysis: sampleAnalysis(),
	}
	summary := svc.DispatchReport(context.Background(), report)

	if summary.PDF.OK {
		t.Error("pdf channel should fail")
	}
	if !strings.Contains(summary.PDF.Reason, "font missing") {
		t.Errorf("pdf reason = %q", summary.PDF.Reason)
	}
	if !summary.Email.OK {
		t.Errorf("email channel failed: %s", summary.Email.Reason)
	}
}

func TestAppointmentTimeFor(t *testing.T) {
	now := fixedTime()
	cases := map[string]string{
		"High":    "2026-03-14 12:30",
		"Medium":  "2026-03-16 10:30",
		"Routine": "2026-03-19 10:30",
		"":        "2026-03-19 10:30",
	}
	for urgency, want := range cases {
		if got := AppointmentTimeFor(urgency, now); got != want {
			t.Errorf("AppointmentTimeFor(%q) = %q, want %q", urgency, got, want)
		}
	}
}

func TestRosterDoctor_UnknownSpecialtyUsesGeneralPhysician(t *testing.T) {
	got := RosterDoctor("Astrologist", func(int) int { return 1 })
	if got != "Dr. Meera Nambiar (MBBS, MD)" {
		t.Errorf("fallback doctor = %q", got)
	}
}
