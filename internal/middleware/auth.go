package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

type contextKey string

const learnerIDKey contextKey = "learner_id"

// TokenParser resolves a bearer token to a learner id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// learner id on the request context.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w, "Authentication required")
				return
			}

			learnerID, err := tokens.ParseToken(raw)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithLearnerID(r.Context(), learnerID)))
		})
	}
}

func WithLearnerID(ctx context.Context, learnerID string) context.Context {
	return context.WithValue(ctx, learnerIDKey, learnerID)
}

// LearnerID extracts the authenticated learner id from the request context.
func LearnerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(learnerIDKey).(string)
	return id, ok && id != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
