package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"patient-intake-agent/internal/booking"
)

type captureSender struct {
	messages []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func newTestClient() (*Client, *captureSender) {
	cap := &captureSender{}
	return &Client{dialer: cap, from: "noreply@amrutha.ai", log: zerolog.Nop()}, cap
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	return buf.String()
}

func TestSendAppointmentEmail(t *testing.T) {
	client, cap := newTestClient()

	appt := booking.Appointment{
		AppointmentID:    "APT-20260314103000",
		DoctorName:       "Dr. Aditi Sharma (Cardiologist)",
		DoctorSpecialist: "Cardiologist",
		AppointmentTime:  "2026-03-14 12:30",
	}
	err := client.SendAppointmentEmail(context.Background(), "asha@example.com", "Asha Rao", appt, []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("SendAppointmentEmail: %v", err)
	}
	if len(cap.messages) != 1 {
		t.Fatalf("messages sent = %d, want 1", len(cap.messages))
	}

	raw := render(t, cap.messages[0])
	for _, want := range []string{
		"To: asha@example.com",
		"Amrutha_AI_Appointment_Report_APT-20260314103000.pdf",
		"Dear Asha Rao",
		"APT-20260314103000",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("rendered message missing %q", want)
		}
	}
}

func TestSendAppointmentEmail_NoPDFSkipsAttachment(t *testing.T) {
	client, cap := newTestClient()

	err := client.SendAppointmentEmail(context.Background(), "asha@example.com", "Asha", booking.Appointment{AppointmentID: "APT-1"}, nil)
	if err != nil {
		t.Fatalf("SendAppointmentEmail: %v", err)
	}
	raw := render(t, cap.messages[0])
	if strings.Contains(raw, ".pdf") {
		t.Error("message should not carry an attachment without pdf bytes")
	}
}

func TestAppointmentBody_Fallbacks(t *testing.T) {
	body := appointmentBody("Patient", booking.Appointment{})
	for _, want := range []string{"a Specialist", "Pending Confirmation", "N/A"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing fallback %q", want)
		}
	}
}

func TestSendWelcomeEmail(t *testing.T) {
	client, cap := newTestClient()

	if err := client.SendWelcomeEmail(context.Background(), "asha@example.com", "Asha Rao"); err != nil {
		t.Fatalf("SendWelcomeEmail: %v", err)
	}
	raw := render(t, cap.messages[0])
	if !strings.Contains(raw, "Welcome to Amrutha AI") {
		t.Error("welcome subject missing")
	}
	if !strings.Contains(raw, "Dear Asha Rao") {
		t.Error("greeting missing")
	}
}
