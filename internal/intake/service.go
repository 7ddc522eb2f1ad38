package intake

import (
	"context"

	"github.com/rs/zerolog"

	"patient-intake-agent/internal/platform/metrics"
)

// SpeechSynthesizer defines the interface for Text-to-Speech.
// We define it here to decouple from the specific sidecar implementation.
type SpeechSynthesizer interface {
	// Synthesize returns base64-encoded audio, or an empty string when the
	// speech service is unavailable. It never fails the intake flow.
	Synthesize(ctx context.Context, text, language string) string
}

// ChannelResult records the outcome of one side-effect channel.
type ChannelResult struct {
	OK     bool
	Reason string
}

// DispatchSummary aggregates the post-completion side effects.
type DispatchSummary struct {
	PDF   ChannelResult
	Email ChannelResult
}

// Dispatcher runs the post-completion side effects (report PDF, confirmation
// email). Implemented by the booking service.
type Dispatcher interface {
	DispatchReport(ctx context.Context, report Report) DispatchSummary
}

// Result is the outcome of one conversational turn.
type Result struct {
	Step     Step
	Record   Record
	Report   *Report
	TTSAudio string
	ErrorMsg string
}

type Service interface {
	ProcessTurn(ctx context.Context, rec Record, latestInput, lastField string) Result
	SynthesizeSpeech(ctx context.Context, text, language string) string
}

type service struct {
	extractor   *Extractor
	synthesizer *Synthesizer
	tts         SpeechSynthesizer
	dispatcher  Dispatcher
	log         zerolog.Logger
}

func NewService(extractor *Extractor, synthesizer *Synthesizer, tts SpeechSynthesizer, dispatcher Dispatcher, log zerolog.Logger) Service {
	return &service{
		extractor:   extractor,
		synthesizer: synthesizer,
		tts:         tts,
		dispatcher:  dispatcher,
		log:         log,
	}
}

const completionMessage = "Thank you. I have collected all necessary details. I am generating your medical appointment report now. A copy will be sent to your email."

func (s *service) SynthesizeSpeech(ctx context.Context, text, language string) string {
	return s.tts.Synthesize(ctx, text, language)
}

// ProcessTurn runs one turn of the intake conversation: validate the latest
// answer, fold it into the record, then either re-ask, ask the next question,
// or finish with a report and its side effects.
func (s *service) ProcessTurn(ctx context.Context, rec Record, latestInput, lastField string) Result {
	if rec == nil {
		rec = Record{}
	}

	// Validation phase. A failed answer repeats the same field without
	// touching the record.
	if lastField != "" && latestInput != "" {
		rule := InferRule(lastField)
		if errMsg := Validate(rule, latestInput); errMsg != "" {
			return Result{
				Step: Step{
					FieldKey:     lastField,
					Question:     RetryQuestion(rule, errMsg),
					ExpectedType: FieldText,
				},
				Record:   rec,
				ErrorMsg: errMsg,
			}
		}
	}

	updated := s.extractor.Apply(ctx, rec, lastField, latestInput)

	// Paid records complete immediately regardless of flow position.
	var step Step
	if updated.String("payment_status") == "paid" {
		step = Step{Complete: true}
	} else {
		step = NextStep(updated)
	}

	if step.Complete {
		metrics.RecordIntakeCompleted()
		report := s.synthesizer.Synthesize(ctx, updated)

		summary := s.dispatcher.DispatchReport(ctx, report)
		if !summary.PDF.OK {
			s.log.Error().Str("reason", summary.PDF.Reason).Msg("report pdf channel failed")
		}
		if !summary.Email.OK {
			s.log.Error().Str("reason", summary.Email.Reason).Msg("report email channel failed")
		}

		return Result{
			Step: Step{
				Complete:     true,
				FieldKey:     "complete",
				Question:     completionMessage,
				ExpectedType: FieldText,
			},
			Record:   updated,
			Report:   &report,
			TTSAudio: s.tts.Synthesize(ctx, completionMessage, updated.Language()),
		}
	}

	return Result{
		Step:     step,
		Record:   updated,
		TTSAudio: s.tts.Synthesize(ctx, step.Question, updated.Language()),
	}
}
