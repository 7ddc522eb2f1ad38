package booking

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"patient-intake-agent/internal/intake"
	"patient-intake-agent/internal/platform/metrics"
)

// PDFGenerator renders the medical report with appointment details.
// Implemented by the report package.
type PDFGenerator interface {
	Generate(patientData intake.Record, analysis intake.MedicalAnalysis, appt Appointment) ([]byte, error)
}

// Mailer sends patient-facing email. Implemented by the mail package.
type Mailer interface {
	SendAppointmentEmail(ctx context.Context, patientEmail, patientName string, appt Appointment, pdfAttachment []byte) error
	SendWelcomeEmail(ctx context.Context, patientEmail, patientName string) error
}

// BookingResult is the outcome of one confirmed booking.
type BookingResult struct {
	Appointment Appointment
	EmailSent   bool
	TTSAudio    string
}

type Service interface {
	Book(ctx context.Context, patientData intake.Record, analysis intake.MedicalAnalysis) (BookingResult, error)
	DispatchReport(ctx context.Context, report intake.Report) intake.DispatchSummary
}

type service struct {
	pdf  PDFGenerator
	mail Mailer
	tts  intake.SpeechSynthesizer
	log  zerolog.Logger
	now  func() time.Time
	pick Picker
}

func NewService(pdf PDFGenerator, mail Mailer, tts intake.SpeechSynthesizer, log zerolog.Logger) Service {
	return &service{
		pdf:  pdf,
		mail: mail,
		tts:  tts,
		log:  log,
		now:  time.Now,
		pick: rand.Intn,
	}
}

// Book assembles a confirmed appointment from the analysis and runs the
// delivery channels. PDF and email failures degrade the booking but never
// fail it.
func (s *service) Book(ctx context.Context, patientData intake.Record, analysis intake.MedicalAnalysis) (BookingResult, error) {
	appt := s.assemble(patientData, analysis)

	pdfBytes, pdfErr := s.pdf.Generate(patientData, analysis, appt)
	if pdfErr != nil {
		s.log.Error().Err(pdfErr).Str("appointment_id", appt.AppointmentID).Msg("pdf generation failed")
	}

	emailSent := false
	if err := s.mail.SendAppointmentEmail(ctx, appt.PatientEmail, appt.PatientName, appt, pdfBytes); err != nil {
		s.log.Error().Err(err).Str("appointment_id", appt.AppointmentID).Msg("email sending failed")
	} else {
		emailSent = true
	}
	metrics.RecordEmailSent("appointment", emailSent)
	metrics.RecordAppointmentBooked(appt.DoctorSpecialist)

	confirmation := fmt.Sprintf(
		"Great news! Your appointment with %s has been confirmed for %s. A confirmation email with your detailed medical report has been sent to %s.",
		appt.DoctorName, appt.AppointmentTime, appt.PatientEmail)
	audio := s.tts.Synthesize(ctx, confirmation, intake.LangEnglish)

	return BookingResult{Appointment: appt, EmailSent: emailSent, TTSAudio: audio}, nil
}

func (s *service) assemble(patientData intake.Record, analysis intake.MedicalAnalysis) Appointment {
	rec := analysis.DoctorRecommendation

	specialistType := rec.SpecialistType
	if specialistType == "" {
		specialistType = "General Physician"
	}
	urgency := rec.ConsultationPriority
	if urgency == "" {
		urgency = "Medium"
	}
	expertise := rec.DoctorExpertise
	if expertise == "" {
		expertise = specialistType
	}

	// Prefer the doctor assigned during intake over a roster lookup.
	doctorName := rec.DoctorName
	if doctorName == "" {
		doctorName = patientData.String("assigned_doctor")
	}
	if doctorName == "" {
		doctorName = RosterDoctor(specialistType, s.pick)
	}

	appointmentTime := patientData.String("selected_slot")
	if appointmentTime == "" || appointmentTime == "To be confirmed" {
		appointmentTime = AppointmentTimeFor(urgency, s.now())
	}

	return Appointment{
		AppointmentID:    NewAppointmentID(s.now()),
		PatientName:      fallback(patientData.String("name"), "N/A"),
		PatientEmail:     fallback(patientData.String("email"), "N/A"),
		PatientPhone:     fallback(patientData.String("phone"), "N/A"),
		DoctorName:       doctorName,
		DoctorSpecialist: specialistType,
		Expertise:        expertise,
		AppointmentTime:  appointmentTime,
		Urgency:          urgency,
		Status:           "Confirmed",
		ConsultationType: "Online Consultation",
	}
}

// DispatchReport runs the intake completion side effects: render the report
// PDF and email it to the patient. Each channel reports its own outcome.
func (s *service) DispatchReport(ctx context.Context, report intake.Report) intake.DispatchSummary {
	rec := report.PatientData
	dr := report.MedicalAnalysis.DoctorRecommendation

	appt := Appointment{
		AppointmentID:    NewAppointmentID(s.now()),
		PatientName:      fallback(rec.String("name"), "Patient"),
		PatientEmail:     fallback(rec.String("email"), "patient@example.com"),
		PatientPhone:     fallback(rec.String("phone"), "N/A"),
		DoctorName:       fallback(dr.DoctorName, fallback(rec.String("assigned_doctor"), "Specialist")),
		DoctorSpecialist: fallback(dr.SpecialistType, "General Physician"),
		Expertise:        fallback(dr.DoctorExpertise, dr.SpecialistType),
		AppointmentTime:  fallback(rec.String("selected_slot"), "To be confirmed"),
		Urgency:          fallback(dr.ConsultationPriority, "Routine"),
		Status:           "Confirmed",
		ConsultationType: "Online Consultation",
	}

	summary := intake.DispatchSummary{
		PDF:   intake.ChannelResult{OK: true},
		Email: intake.ChannelResult{OK: true},
	}

	pdfBytes, err := s.pdf.Generate(rec, report.MedicalAnalysis, appt)
	if err != nil {
		summary.PDF = intake.ChannelResult{Reason: err.Error()}
	}

	if err := s.mail.SendAppointmentEmail(ctx, appt.PatientEmail, appt.PatientName, appt, pdfBytes); err != nil {
		summary.Email = intake.ChannelResult{Reason: err.Error()}
	}
	metrics.RecordEmailSent("report", summary.Email.OK)

	return summary
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
