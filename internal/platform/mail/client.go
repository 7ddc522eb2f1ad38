package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"patient-intake-agent/internal/booking"
)

// sender abstracts the SMTP dialer so tests can capture messages.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends patient-facing email over SMTP with STARTTLS. It implements
// booking.Mailer.
type Client struct {
	dialer sender
	from   string
	log    zerolog.Logger
}

func NewClient(host string, port int, user, password, from string, log zerolog.Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log,
	}
}

// SendAppointmentEmail delivers the confirmation with the report PDF
// attached when available.
func (c *Client) SendAppointmentEmail(ctx context.Context, patientEmail, patientName string, appt booking.Appointment, pdfAttachment []byte) error {
	if patientName == "" {
		patientName = "Patient"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", patientEmail)
	m.SetHeader("Subject", "Your Amrutha AI Medical Report & Appointment Confirmation")
	m.SetBody("text/plain", appointmentBody(patientName, appt))

	if len(pdfAttachment) > 0 {
		filename := fmt.Sprintf("Amrutha_AI_Appointment_Report_%s.pdf", appt.AppointmentID)
		m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(pdfAttachment))
			return err
		}))
	}

	c.log.Info().Str("to", patientEmail).Str("appointment_id", appt.AppointmentID).Msg("sending appointment email")
	if err := c.dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "send appointment email")
	}
	return nil
}

// SendWelcomeEmail greets a newly registered patient.
func (c *Client) SendWelcomeEmail(ctx context.Context, patientEmail, patientName string) error {
	if patientName == "" {
		patientName = "Patient"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", patientEmail)
	m.SetHeader("Subject", "Welcome to Amrutha AI - Your Health Companion")
	m.SetBody("text/plain", welcomeBody(patientName))

	if err := c.dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "send welcome email")
	}
	return nil
}

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func appointmentBody(patientName string, appt booking.Appointment) string {
	doctorName := appt.DoctorName
	if doctorName == "" {
		doctorName = "a Specialist"
	}
	appointmentTime := appt.AppointmentTime
	if appointmentTime == "" {
		appointmentTime = "Pending Confirmation"
	}
	appointmentID := appt.AppointmentID
	if appointmentID == "" {
		appointmentID = "N/A"
	}

	return fmt.Sprintf(`Dear %s,

Your appointment has been successfully confirmed with Amrutha AI.

%s
APPOINTMENT DETAILS
%s
  Appointment ID : %s
  Doctor         : %s
  Specialty      : %s
  Date & Time    : %s
  Status         : Confirmed
%s

Please find your detailed medical report attached to this email.
Share it with your doctor during the consultation.

DISCLAIMER:
This report is AI-generated for informational purposes only.
It is not a substitute for professional medical advice.

Stay Healthy,
Amrutha AI Team
`, patientName, divider, divider, appointmentID, doctorName, appt.DoctorSpecialist, appointmentTime, divider)
}

func welcomeBody(patientName string) string {
	return fmt.Sprintf(`Dear %s,

Welcome to Amrutha AI!

Thank you for trusting us with your health journey. Our AI-powered assistant is here to help you understand your symptoms and guide you to the right care.

You can now:
  - Describe your symptoms using voice or text.
  - Get instant AI-powered medical assessments.
  - Book appointments with specialists effortlessly.

Stay Healthy,
Amrutha AI Team
`, patientName)
}
