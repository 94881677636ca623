package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.CreateFromRequest(r.Context(), learnerID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	session, err := h.service.Get(r.Context(), learnerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session.ToView())
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.AnswerIndex == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answer_index is required"})
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), learnerID, mux.Vars(r)["id"], *req.AnswerIndex, req.ResponseTimeSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
	case errors.Is(err, models.ErrQuizAlreadyCompleted):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Quiz already completed"})
	default:
		log.Printf("[quiz] request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
