package intake

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/json-intake", h.HandleIntake)
	r.Post("/tts", h.HandleTTS)
}

type IntakeRequest struct {
	CollectedData Record `json:"collected_data"`
	LatestInput   string `json:"latest_input"`
	LastFieldKey  string `json:"last_field_key,omitempty"`
}

type IntakeResponse struct {
	FieldKey     string    `json:"field_key"`
	Question     string    `json:"question"`
	ExpectedType FieldType `json:"expected_type"`
	Options      []string  `json:"options,omitempty"`
	IsComplete   bool      `json:"is_complete"`
	Report       *Report   `json:"report,omitempty"`
	TTSAudio     string    `json:"tts_audio_base64,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result := h.svc.ProcessTurn(r.Context(), req.CollectedData, strings.TrimSpace(req.LatestInput), req.LastFieldKey)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(IntakeResponse{
		FieldKey:     result.Step.FieldKey,
		Question:     result.Step.Question,
		ExpectedType: result.Step.ExpectedType,
		Options:      result.Step.Options,
		IsComplete:   result.Step.Complete,
		Report:       result.Report,
		TTSAudio:     result.TTSAudio,
		ErrorMessage: result.ErrorMsg,
	})
}

type TTSRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TTSResponse struct {
	AudioBase64 *string `json:"audio_base64"`
}

// HandleTTS synthesizes speech for arbitrary text. A missing audio result is
// reported as a null payload, never a server error, so the frontend can fall
// back to silent mode.
func (h *Handler) HandleTTS(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Text cannot be empty.", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = LangEnglish
	}

	var resp TTSResponse
	if audio := h.svc.SynthesizeSpeech(r.Context(), req.Text, req.Language); audio != "" {
		resp.AudioBase64 = &audio
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
