package booking

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"patient-intake-agent/internal/intake"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/json-appointment", h.HandleBook)
}

type AppointmentRequest struct {
	PatientData     intake.Record          `json:"patient_data"`
	MedicalAnalysis intake.MedicalAnalysis `json:"medical_analysis"`
}

type AppointmentResponse struct {
	Success            bool        `json:"success"`
	AppointmentID      string      `json:"appointment_id"`
	AppointmentDetails Appointment `json:"appointment_details"`
	EmailSent          bool        `json:"email_sent"`
	TTSAudio           *string     `json:"tts_audio_base64"`
}

func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Book(r.Context(), req.PatientData, req.MedicalAnalysis)
	if err != nil {
		http.Error(w, "Booking failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := AppointmentResponse{
		Success:            true,
		AppointmentID:      result.Appointment.AppointmentID,
		AppointmentDetails: result.Appointment,
		EmailSent:          result.EmailSent,
	}
	if result.TTSAudio != "" {
		resp.TTSAudio = &result.TTSAudio
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
