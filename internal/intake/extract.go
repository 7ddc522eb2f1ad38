package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// TextGenerator produces model completions for extraction and report
// synthesis. Implemented by the Groq client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Extractor turns free-text answers into structured record updates.
type Extractor struct {
	llm TextGenerator
	log zerolog.Logger
}

func NewExtractor(llm TextGenerator, log zerolog.Logger) *Extractor {
	return &Extractor{llm: llm, log: log}
}

// Apply merges the latest answer into a copy of the record. Payment answers
// are additionally handled with a direct heuristic, so a Groq outage or a
// confused extraction cannot block checkout. When extraction fails the raw
// answer is stored verbatim under the asked field.
func (e *Extractor) Apply(ctx context.Context, rec Record, lastField, input string) Record {
	updated := rec.Clone()
	if lastField == "" || strings.TrimSpace(input) == "" {
		return updated
	}
	// The heuristic result is re-applied after the model merge so it always
	// wins over whatever the model extracted for payment.
	defer func() {
		lower := strings.ToLower(input)
		if strings.Contains(strings.ToLower(lastField), "payment") || strings.Contains(lower, "pay") {
			if strings.Contains(lower, "paid") || strings.Contains(lower, "done") {
				updated["payment_status"] = "paid"
			}
		}
	}()

	existing, _ := json.Marshal(rec)
	prompt := fmt.Sprintf(`EXTRACT info from user input into JSON.
CONTEXT: Question was about %q. User said %q.
EXISTING DATA: %s

RULES:
1. Update the relevant field key (e.g., name, age, symptoms).
2. Normalize values (Age -> number, Gender -> Male/Female).
3. If user says "Paid" for payment, set "payment_status": "paid".
4. 'patient_relation': Extract 'Self', 'Parent', 'Child', 'Friend', 'Wife', 'Husband'.

OUTPUT JSON: { "field_key": value }`, lastField, input, existing)

	raw, err := e.llm.Generate(ctx, prompt, GenerateOptions{JSONMode: true})
	if err != nil {
		e.log.Error().Err(err).Str("field", lastField).Msg("extraction call failed, storing raw answer")
		updated[lastField] = input
		return updated
	}

	var extracted map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &extracted); err != nil {
		e.log.Error().Err(err).Str("field", lastField).Msg("extraction output unparseable, storing raw answer")
		updated[lastField] = input
		return updated
	}

	for k, v := range extracted {
		updated[k] = v
	}
	e.log.Info().Str("field", lastField).Interface("extracted", extracted).Msg("extraction applied")
	return updated
}
