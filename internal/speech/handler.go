package speech

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/neurolearn/backend/internal/models"
)

type Handler struct {
	speaker *Speaker
}

func NewHandler(speaker *Speaker) *Handler {
	return &Handler{speaker: speaker}
}

func (h *Handler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	var req models.AudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var (
		resp *models.AudioResponse
		err  error
	)
	if req.Mode != "" {
		resp, err = h.speaker.CreateSummaryAudio(r.Context(), req.Summaries, req.Mode)
	} else {
		resp, err = h.speaker.CreateAudioFile(r.Context(), req.Text, req.Filename)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	pause := true
	if req.PauseSentences != nil {
		pause = *req.PauseSentences
	}

	if err := h.speaker.SpeakAsync(req.Text, pause); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrConfigurationMissing), errors.Is(err, models.ErrServiceUnavailable):
		log.Printf("[speech] WARNING: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Speech synthesis unavailable"})
	default:
		log.Printf("[speech] request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
