package intake

// flowRule describes one step of the intake conversation. The engine walks
// the table in order and asks the first rule whose field is still pending.
type flowRule struct {
	fieldKey string
	typ      FieldType
	options  []string

	// applies reports whether this rule is relevant for the record at all.
	// Nil means always.
	applies func(Record) bool

	// pending overrides the default missing-value check. Nil means the rule
	// fires while rec.Missing(fieldKey) is true.
	pending func(Record) bool

	// ask builds the localized question for this rule.
	ask func(Record) string
}

func personal(rec Record, key string) string {
	suffix := "_self"
	if rel := rec.String("patient_relation"); rel != "" && rel != "Self" {
		suffix = "_other"
	}
	return Question(key+suffix, rec.Language(), map[string]string{"name": rec.CallingName()})
}

var intakeFlow = []flowRule{
	{
		fieldKey: "patient_relation",
		typ:      FieldOptions,
		options:  []string{"Self", "Parent", "Child", "Other"},
		ask: func(rec Record) string {
			return Question("patient_relation", rec.Language(), nil)
		},
	},
	{
		fieldKey: "name",
		typ:      FieldText,
		ask:      func(rec Record) string { return personal(rec, "name") },
	},
	{
		fieldKey: "age",
		typ:      FieldNumber,
		ask:      func(rec Record) string { return personal(rec, "age") },
	},
	{
		fieldKey: "gender",
		typ:      FieldOptions,
		options:  []string{"Male", "Female", "Other"},
		ask:      func(rec Record) string { return personal(rec, "gender") },
	},
	{
		fieldKey: "phone",
		typ:      FieldText,
		ask:      func(rec Record) string { return Question("phone", rec.Language(), nil) },
	},
	{
		fieldKey: "email",
		typ:      FieldText,
		ask:      func(rec Record) string { return Question("email", rec.Language(), nil) },
	},
	{
		fieldKey: "location",
		typ:      FieldText,
		ask:      func(rec Record) string { return Question("location", rec.Language(), nil) },
	},
	{
		fieldKey: "weight",
		typ:      FieldNumber,
		ask:      func(rec Record) string { return personal(rec, "weight") },
	},
	{
		fieldKey: "blood_group",
		typ:      FieldText,
		ask:      func(rec Record) string { return personal(rec, "blood_group") },
	},
	{
		fieldKey: "symptoms",
		typ:      FieldText,
		ask:      func(rec Record) string { return personal(rec, "symptoms") },
	},
	{
		fieldKey: "duration",
		typ:      FieldText,
		ask:      func(rec Record) string { return Question("duration", rec.Language(), nil) },
	},
	{
		fieldKey: "bp_history",
		typ:      FieldOptions,
		options:  []string{"Yes", "No", "Don't Know"},
		applies:  func(rec Record) bool { return !rec.IsChild() },
		ask:      func(rec Record) string { return personal(rec, "bp_history") },
	},
	{
		fieldKey: "sugar_history",
		typ:      FieldOptions,
		options:  []string{"Yes", "No", "Don't Know"},
		applies:  func(rec Record) bool { return !rec.IsChild() },
		ask:      func(rec Record) string { return personal(rec, "sugar_history") },
	},
	{
		fieldKey: "thyroid_history",
		typ:      FieldOptions,
		options:  []string{"Yes", "No", "Don't Know"},
		applies:  func(rec Record) bool { return !rec.IsChild() && rec.IsFemale() },
		ask:      func(rec Record) string { return personal(rec, "thyroid_history") },
	},
	{
		fieldKey: "surgeries",
		typ:      FieldText,
		ask:      func(rec Record) string { return personal(rec, "surgeries") },
	},
	{
		fieldKey: "medications",
		typ:      FieldText,
		ask:      func(rec Record) string { return personal(rec, "medications") },
	},
	{
		fieldKey: "assigned_doctor",
		typ:      FieldOptions,
		options:  []string{"Yes, proceed", "Choose another time"},
		ask: func(rec Record) string {
			return Question("assigned_doctor", rec.Language(), map[string]string{
				"doctor_name": AssignDoctor(rec.String("symptoms")),
			})
		},
	},
	{
		fieldKey: "selected_slot",
		typ:      FieldOptions,
		options:  []string{"Morning (9 AM – 12 PM)", "Afternoon (1 PM – 4 PM)", "Evening (5 PM – 8 PM)"},
		ask: func(rec Record) string {
			return Question("selected_slot", rec.Language(), nil)
		},
	},
	{
		fieldKey: "payment_status",
		typ:      FieldPayment,
		pending:  func(rec Record) bool { return rec.String("payment_status") != "paid" },
		ask: func(rec Record) string {
			return Question("payment_status", rec.Language(), map[string]string{
				"name":        rec.CallingName(),
				"doctor_name": AssignDoctor(rec.String("symptoms")),
			})
		},
	},
}

// NextStep walks the flow table and returns the first step still waiting for
// an answer. A completed record yields a Step with Complete set.
func NextStep(rec Record) Step {
	for _, rule := range intakeFlow {
		if rule.applies != nil && !rule.applies(rec) {
			continue
		}
		waiting := rec.Missing(rule.fieldKey)
		if rule.pending != nil {
			waiting = rule.pending(rec)
		}
		if !waiting {
			continue
		}
		return Step{
			FieldKey:     rule.fieldKey,
			Question:     rule.ask(rec),
			ExpectedType: rule.typ,
			Options:      rule.options,
		}
	}
	return Step{Complete: true}
}
