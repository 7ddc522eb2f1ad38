package intake

import (
	"strings"
	"testing"
)

// adultRecord returns a record filled through the clinical section for an
// adult male, useful as a base for the conditional-history tests.
func adultRecord() Record {
	return Record{
		"patient_relation": "Self",
		"name":             "Ramesh Iyer",
		"age":              "45",
		"gender":           "Male",
		"phone":            "9876543210",
		"email":            "ramesh@example.com",
		"location":         "Bengaluru",
		"weight":           "78",
		"blood_group":      "B+",
		"symptoms":         "chest pain",
		"duration":         "3 days",
	}
}

func TestNextStep_StartsWithRelation(t *testing.T) {
	step := NextStep(Record{})
	if step.Complete {
		t.Fatal("empty record reported complete")
	}
	if step.FieldKey != "patient_relation" {
		t.Errorf("first field = %q, want patient_relation", step.FieldKey)
	}
	if step.ExpectedType != FieldOptions {
		t.Errorf("expected_type = %q, want options", step.ExpectedType)
	}
	if !strings.Contains(step.Question, "Welcome") {
		t.Errorf("first question missing greeting: %q", step.Question)
	}
}

func TestNextStep_FollowsDemographicOrder(t *testing.T) {
	rec := Record{"patient_relation": "Self"}
	order := []string{"name", "age", "gender", "phone", "email", "location", "weight", "blood_group", "symptoms", "duration"}
	for _, want := range order {
		step := NextStep(rec)
		if step.FieldKey != want {
			t.Fatalf("next field = %q, want %q (record %v)", step.FieldKey, want, rec)
		}
		rec[want] = "placeholder"
	}
	// Placeholder age parses as non-numeric, defaulting to adult.
	if step := NextStep(rec); step.FieldKey != "bp_history" {
		t.Errorf("after clinical block got %q, want bp_history", step.FieldKey)
	}
}

func TestNextStep_AdultHistoryOrder(t *testing.T) {
	rec := adultRecord()

	step := NextStep(rec)
	if step.FieldKey != "bp_history" {
		t.Fatalf("got %q, want bp_history", step.FieldKey)
	}
	rec["bp_history"] = "No"

	step = NextStep(rec)
	if step.FieldKey != "sugar_history" {
		t.Fatalf("got %q, want sugar_history", step.FieldKey)
	}
	rec["sugar_history"] = "No"

	// Male patient skips thyroid history.
	step = NextStep(rec)
	if step.FieldKey != "surgeries" {
		t.Errorf("male patient got %q, want surgeries", step.FieldKey)
	}
}

func TestNextStep_FemaleGetsThyroidQuestion(t *testing.T) {
	rec := adultRecord()
	rec["gender"] = "Female"
	rec["bp_history"] = "No"
	rec["sugar_history"] = "Yes"

	step := NextStep(rec)
	if step.FieldKey != "thyroid_history" {
		t.Errorf("female patient got %q, want thyroid_history", step.FieldKey)
	}
}

func TestNextStep_ChildSkipsHistory(t *testing.T) {
	rec := adultRecord()
	rec["age"] = "8"

	step := NextStep(rec)
	if step.FieldKey != "surgeries" {
		t.Errorf("child got %q, want surgeries", step.FieldKey)
	}
}

func TestNextStep_DoctorThenSlotThenPayment(t *testing.T) {
	rec := adultRecord()
	rec["bp_history"] = "No"
	rec["sugar_history"] = "No"
	rec["surgeries"] = "None"
	rec["medications"] = "None"

	step := NextStep(rec)
	if step.FieldKey != "assigned_doctor" {
		t.Fatalf("got %q, want assigned_doctor", step.FieldKey)
	}
	if !strings.Contains(step.Question, "Dr. Aditi Sharma (Cardiologist)") {
		t.Errorf("doctor question missing assignment: %q", step.Question)
	}
	rec["assigned_doctor"] = "Yes, proceed"

	step = NextStep(rec)
	if step.FieldKey != "selected_slot" {
		t.Fatalf("got %q, want selected_slot", step.FieldKey)
	}
	if len(step.Options) != 3 {
		t.Errorf("slot options = %v, want 3 day parts", step.Options)
	}
	rec["selected_slot"] = "Morning (9 AM – 12 PM)"

	step = NextStep(rec)
	if step.FieldKey != "payment_status" {
		t.Fatalf("got %q, want payment_status", step.FieldKey)
	}
	if step.ExpectedType != FieldPayment {
		t.Errorf("payment expected_type = %q, want payment", step.ExpectedType)
	}
}

func TestNextStep_PaymentRequiresPaid(t *testing.T) {
	rec := adultRecord()
	rec["bp_history"] = "No"
	rec["sugar_history"] = "No"
	rec["surgeries"] = "None"
	rec["medications"] = "None"
	rec["assigned_doctor"] = "Yes, proceed"
	rec["selected_slot"] = "Evening (5 PM – 8 PM)"

	// Any value other than "paid" keeps asking for payment.
	rec["payment_status"] = "pending"
	if step := NextStep(rec); step.FieldKey != "payment_status" {
		t.Errorf("pending payment got %q, want payment_status", step.FieldKey)
	}

	rec["payment_status"] = "paid"
	if step := NextStep(rec); !step.Complete {
		t.Errorf("paid record not complete, next field %q", step.FieldKey)
	}
}

func TestNextStep_OtherRelationUsesOtherPhrasing(t *testing.T) {
	rec := Record{"patient_relation": "Parent"}
	step := NextStep(rec)
	if !strings.Contains(step.Question, "patient's full name") {
		t.Errorf("relation Parent should use third-person phrasing, got %q", step.Question)
	}
}

func TestNextStep_HindiQuestions(t *testing.T) {
	rec := Record{"language": "Hindi", "patient_relation": "Self"}
	step := NextStep(rec)
	if step.FieldKey != "name" {
		t.Fatalf("got %q, want name", step.FieldKey)
	}
	if step.Question != "कृपया अपना पूरा नाम बताएं?" {
		t.Errorf("Hindi name question = %q", step.Question)
	}
}
