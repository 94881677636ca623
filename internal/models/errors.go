package models

import "errors"

var (
	// ErrConfigurationMissing means no text-generation service is configured.
	// Callers degrade to their fallback path.
	ErrConfigurationMissing = errors.New("text generation service not configured")

	// ErrServiceUnavailable covers network, auth, rate-limit and parse failures
	// of the text-generation service. Callers degrade and log.
	ErrServiceUnavailable = errors.New("text generation service unavailable")

	ErrInvalidInput         = errors.New("invalid input")
	ErrSessionNotFound      = errors.New("session not found")
	ErrQuizAlreadyCompleted = errors.New("quiz already completed")

	// ErrPersistenceCorrupt marks a stored document that cannot be decoded.
	// Stores log it and treat the document as absent.
	ErrPersistenceCorrupt = errors.New("persisted document is corrupt")
)
