package intake

import (
	"strconv"
	"strings"
)

// BookingType classifies how quickly the appointment must happen.
type BookingType string

const (
	BookingInstant   BookingType = "instant"
	BookingScheduled BookingType = "scheduled"
)

// ScheduledSlots are the day parts offered for a non-urgent booking.
var ScheduledSlots = []string{
	"Morning (9 AM – 12 PM)",
	"Afternoon (1 PM – 4 PM)",
	"Evening (5 PM – 8 PM)",
}

var urgentKeywords = []string{
	"chest pain", "difficulty breathing", "severe pain", "bleeding", "unconscious",
	"stroke", "heart attack", "seizure", "severe headache", "high fever",
	"accident", "injury", "emergency", "critical", "urgent",
}

var suddenOnsetWords = []string{"hour", "hours", "sudden", "just now", "minutes"}

// TriageBooking decides between an instant booking and a scheduled one.
// Urgent symptoms, high pain, or sudden onset with significant pain all
// escalate to instant.
func TriageBooking(rec Record) (BookingType, []string) {
	symptoms := strings.ToLower(rec.String("symptoms"))
	duration := strings.ToLower(rec.String("duration"))

	painLevel := 0
	if raw := rec.String("pain_level"); raw != "" {
		clean := strings.Replace(raw, ".", "", 1)
		if n, err := strconv.Atoi(clean); err == nil {
			painLevel = n
		}
	}

	urgent := painLevel >= 8
	if !urgent {
		for _, kw := range urgentKeywords {
			if strings.Contains(symptoms, kw) {
				urgent = true
				break
			}
		}
	}
	if !urgent && painLevel >= 6 {
		for _, w := range suddenOnsetWords {
			if strings.Contains(duration, w) {
				urgent = true
				break
			}
		}
	}

	if urgent {
		return BookingInstant, nil
	}
	slots := make([]string, len(ScheduledSlots))
	copy(slots, ScheduledSlots)
	return BookingScheduled, slots
}

// VitalsEmergency flags blood pressure or blood sugar readings outside safe
// bounds. Systolic above 180 or below 90, diastolic above 120 or below 60,
// sugar below 70 or above 300 mg/dL. Unparseable readings are not treated as
// critical on their own.
func VitalsEmergency(bp, sugar string) bool {
	if parts := strings.Split(bp, "/"); len(parts) == 2 {
		sys, errS := strconv.Atoi(strings.TrimSpace(parts[0]))
		dia, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errS == nil && errD == nil {
			if sys > 180 || dia > 120 || sys < 90 || dia < 60 {
				return true
			}
		}
	}
	if val, err := strconv.Atoi(strings.TrimSpace(sugar)); err == nil {
		if val < 70 || val > 300 {
			return true
		}
	}
	return false
}
