package models

import (
	"strings"
	"time"
)

type Learner struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns "FirstName L." format (first name + last initial).
func (l Learner) DisplayName() string {
	parts := splitName(l.Name)
	if len(parts) <= 1 {
		return l.Name
	}
	lastName := parts[len(parts)-1]
	if len(lastName) > 0 {
		return parts[0] + " " + string([]rune(lastName)[0]) + "."
	}
	return parts[0]
}

func splitName(name string) []string {
	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(name), " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// LearnerAccount is the stored account document. It never leaves the backend.
type LearnerAccount struct {
	Learner
	PasswordHash string `json:"password_hash"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token       string  `json:"token"`
	Learner     Learner `json:"learner"`
	DisplayName string  `json:"display_name"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
