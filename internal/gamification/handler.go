package gamification

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ── Streak & Reward ─────────────────────────────────────

func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.StreakSummary(r.Context(), learnerID)
	if err != nil {
		writeError(w, err, "Failed to get streak")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetReward(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	st, err := h.service.Streak(r.Context(), learnerID)
	if err != nil {
		writeError(w, err, "Failed to get reward")
		return
	}

	writeJSON(w, http.StatusOK, RewardFor(st))
}

// ── History & Analytics ─────────────────────────────────

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 10)

	records, err := h.service.History(r.Context(), learnerID, limit)
	if err != nil {
		writeError(w, err, "Failed to get history")
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryListResponse{Records: records, Total: len(records)})
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	window := intQueryParam(r.URL.Query(), "window", DefaultAnalyticsWindow)

	summary, err := h.service.Analytics(r.Context(), learnerID, window)
	if err != nil {
		writeError(w, err, "Failed to get analytics")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, models.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	log.Printf("[gamification] %s: %v", msg, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
