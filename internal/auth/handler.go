package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

// Handler serves register, login and me. The learner id is the username, and
// the account lives in the learner's "account" document.
type Handler struct {
	docs   storage.Store
	tokens *Tokens
	locks  *storage.KeyedMutex
}

func NewHandler(docs storage.Store, tokens *Tokens, locks *storage.KeyedMutex) *Handler {
	if locks == nil {
		locks = storage.NewKeyedMutex()
	}
	return &Handler{docs: docs, tokens: tokens, locks: locks}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Name = strings.TrimSpace(req.Name)

	if req.Username == "" || req.Name == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username, name, and password are required"})
		return
	}
	if err := storage.ValidateLearnerID(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username must be 1-64 letters, digits, '-' or '_'"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	unlock := h.locks.Lock(req.Username)
	defer unlock()

	var existing models.LearnerAccount
	found, err := h.docs.Load(r.Context(), req.Username, storage.KindAccount, &existing)
	if err != nil {
		log.Printf("[auth] failed to load account %s: %v", req.Username, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}
	if found {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this username already exists"})
		return
	}

	now := time.Now()
	account := models.LearnerAccount{
		Learner: models.Learner{
			Username:  req.Username,
			Name:      req.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: string(hashedPassword),
	}
	if err := h.docs.Save(r.Context(), req.Username, storage.KindAccount, account); err != nil {
		log.Printf("[auth] failed to save account %s: %v", req.Username, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}

	h.respondWithToken(w, http.StatusCreated, account.Learner)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(strings.ToLower(req.Username))

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username and password are required"})
		return
	}

	var account models.LearnerAccount
	found, err := h.docs.Load(r.Context(), req.Username, storage.KindAccount, &account)
	if errors.Is(err, models.ErrInvalidInput) || (err == nil && !found) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid username or password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid username or password"})
		return
	}

	h.respondWithToken(w, http.StatusOK, account.Learner)
}

func (h *Handler) GetCurrentLearner(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := middleware.LearnerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var account models.LearnerAccount
	found, err := h.docs.Load(r.Context(), learnerID, storage.KindAccount, &account)
	if err != nil || !found {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Learner not found"})
		return
	}

	writeJSON(w, http.StatusOK, account.Learner)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, learner models.Learner) {
	token, err := h.tokens.Issue(learner.Username)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}
	writeJSON(w, status, models.AuthResponse{Token: token, Learner: learner, DisplayName: learner.DisplayName()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
