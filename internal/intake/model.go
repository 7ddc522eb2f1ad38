package intake

import (
	"strconv"
	"strings"
	"time"
)

// FieldType tells the frontend what kind of input widget to render.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldNumber  FieldType = "number"
	FieldDate    FieldType = "date"
	FieldOptions FieldType = "options"
	FieldPayment FieldType = "payment"
)

// Record is the accumulated patient intake data for one session. The client
// owns it and sends it back on every request; the server never stores it.
// Values are strings as typed by the user, or numbers/nested objects when the
// extraction step normalized them.
type Record map[string]any

// Step is the decision engine's output: either the next question to ask or a
// completion signal.
type Step struct {
	Complete     bool
	FieldKey     string
	Question     string
	ExpectedType FieldType
	Options      []string
}

// Report is the final artifact produced once intake completes.
type Report struct {
	Title           string          `json:"title"`
	GeneratedBy     string          `json:"generated_by"`
	PatientData     Record          `json:"patient_data"`
	MedicalAnalysis MedicalAnalysis `json:"medical_analysis"`
	Timestamp       time.Time       `json:"timestamp"`
}

// Missing reports whether a field still needs to be collected. Absent keys,
// empty strings, zero numbers and false booleans all count as missing.
// A legitimate zero answer is indistinguishable from "not answered yet",
// which is acceptable here because every numeric field rejects zero at
// validation.
func (r Record) Missing(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	default:
		return false
	}
}

// String returns the value under key rendered as a string, or "" if missing.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Clone returns a shallow copy; extraction merges into the copy so a failed
// request never mutates the caller's view.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// AgeYears parses the collected age, tolerating suffixes like "32 years".
// Unparseable ages default to 25 so adult-only questions are not skipped by
// accident.
func (r Record) AgeYears() int {
	raw := strings.ToLower(r.String("age"))
	raw = strings.ReplaceAll(raw, "years", "")
	raw = strings.ReplaceAll(raw, "yrs", "")
	raw = strings.TrimSpace(raw)
	age, err := strconv.Atoi(raw)
	if err != nil {
		return 25
	}
	return age
}

// IsChild reports whether the patient is under 12; children skip the chronic
// condition questions.
func (r Record) IsChild() bool {
	return r.AgeYears() < 12
}

// IsFemale reports whether the collected gender indicates female; gates the
// thyroid-history question.
func (r Record) IsFemale() bool {
	g := strings.ToLower(r.String("gender"))
	return strings.Contains(g, "female") || strings.Contains(g, "woman")
}

// CallingName returns the patient's first name for question personalization,
// or "there" when the name has not been collected yet.
func (r Record) CallingName() string {
	name := strings.TrimSpace(r.String("name"))
	if name == "" {
		return "there"
	}
	return strings.Fields(name)[0]
}

// Language returns the session language, defaulting to English.
func (r Record) Language() string {
	if lang := r.String("language"); lang != "" {
		return lang
	}
	return "English"
}
