package coach

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
)

type Handler struct {
	coach *Coach
}

func NewHandler(coach *Coach) *Handler {
	return &Handler{coach: coach}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CoachMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	reply, err := h.coach.Respond(r.Context(), learnerID, req.Message, req.Topic)
	if err != nil {
		writeError(w, err, "Failed to reach coach")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	entries, err := h.coach.History(r.Context(), learnerID)
	if err != nil {
		writeError(w, err, "Failed to get conversation history")
		return
	}

	writeJSON(w, http.StatusOK, models.CoachHistoryResponse{Conversations: entries})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	profile, err := h.coach.Profile(r.Context(), learnerID)
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	suggestions, err := h.coach.Suggestions(r.Context(), learnerID)
	if err != nil {
		writeError(w, err, "Failed to get suggestions")
		return
	}

	writeJSON(w, http.StatusOK, models.SuggestionsResponse{Suggestions: suggestions})
}

func (h *Handler) GetMotivation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": h.coach.Motivation()})
}

func writeError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, models.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	log.Printf("[coach] %s: %v", msg, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
