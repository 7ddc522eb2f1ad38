package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation rule names. These are looser than FieldType because a "text"
// step like phone or blood group still carries a strict format.
const (
	RulePhone      = "phone"
	RuleEmail      = "email"
	RuleAge        = "age"
	RuleDate       = "date"
	RuleBloodGroup = "blood_group"
	RuleWeight     = "weight"
	RuleNumber     = "number"
	RuleText       = "text"
)

var (
	phoneStripRe  = regexp.MustCompile(`[\s\-]`)
	phoneRe       = regexp.MustCompile(`^\d{10}$`)
	emailRe       = regexp.MustCompile(`[^@]+@[^@]+\.[^@]+`)
	bloodGroupRe  = regexp.MustCompile(`^(A|B|AB|O)[+-]$`)
	numberShapeRe = regexp.MustCompile(`^\d+$`)
)

// InferRule maps a field key to the validation rule that applies to it.
// The flow is dynamic, so the rule is inferred from the key rather than
// carried alongside every step.
func InferRule(fieldKey string) string {
	key := strings.ToLower(fieldKey)
	switch {
	case strings.Contains(key, "phone"):
		return RulePhone
	case strings.Contains(key, "email"):
		return RuleEmail
	case strings.Contains(key, "age"):
		return RuleAge
	case strings.Contains(key, "date"), strings.Contains(key, "dob"):
		return RuleDate
	case strings.Contains(key, "blood"):
		return RuleBloodGroup
	case strings.Contains(key, "weight"):
		return RuleWeight
	default:
		return RuleText
	}
}

// Validate checks a raw answer against a rule. It returns an empty string
// when the answer is acceptable and a user-facing correction message when
// it is not.
func Validate(rule, value string) string {
	if strings.TrimSpace(value) == "" {
		return "This field cannot be empty."
	}

	switch rule {
	case RulePhone:
		return validatePhone(value)
	case RuleEmail:
		return validateEmail(value)
	case RuleAge:
		return validateAge(value)
	case RuleDate:
		return validateDate(value)
	case RuleBloodGroup:
		return validateBloodGroup(value)
	case RuleWeight:
		return validateWeight(value)
	case RuleNumber:
		return validateNumber(value)
	}
	return ""
}

func validatePhone(value string) string {
	clean := phoneStripRe.ReplaceAllString(value, "")
	if !phoneRe.MatchString(clean) {
		return "Please provide a valid 10-digit phone number."
	}
	return ""
}

func validateEmail(value string) string {
	if !emailRe.MatchString(value) {
		return "Please provide a valid email address."
	}
	return ""
}

func validateAge(value string) string {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "Please provide your age as a number."
	}
	if age < 1 || age > 120 {
		return "Please provide a realistic age (1-120)."
	}
	return ""
}

func validateDate(value string) string {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err != nil {
		return "Please use the date picker or format YYYY-MM-DD."
	}
	return ""
}

func validateBloodGroup(value string) string {
	clean := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "")
	// "Don't Know" and variants are accepted as-is.
	if bloodGroupRe.MatchString(clean) || strings.Contains(clean, "KNOW") {
		return ""
	}
	return "Please enter a valid Blood Group (e.g., A+, O-)."
}

func validateWeight(value string) string {
	w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "Please enter weight as a number."
	}
	if w < 1 || w > 300 {
		return "Please provide a realistic weight in kg."
	}
	return ""
}

func validateNumber(value string) string {
	clean := strings.Replace(strings.TrimSpace(value), ".", "", 1)
	if !numberShapeRe.MatchString(clean) {
		return "Please enter a valid number."
	}
	return ""
}

// RetryQuestion wraps a validation error into the message shown to the user
// when they need to re-answer the same field.
func RetryQuestion(rule, errMsg string) string {
	label := strings.ReplaceAll(rule, "_", " ")
	return "I'm sorry, that doesn't look like a valid " + label + ". " + errMsg
}
