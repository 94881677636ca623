// Package storage persists whole JSON documents keyed by learner id and
// document kind. Every update is a whole-document read-modify-write, so
// callers must hold the learner's lock (see KeyedMutex) across Load and Save.
// Only one process may write a given learner's documents at a time.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"regexp"

	"github.com/neurolearn/backend/internal/models"
)

type Kind string

const (
	KindProfile       Kind = "profile"
	KindConversations Kind = "coach_conversations"
	KindQuizHistory   Kind = "quiz_history"
	KindStreaks       Kind = "streaks"
	KindAccount       Kind = "account"
)

type Store interface {
	// Load decodes the document into dst. It reports false when the document
	// does not exist or is corrupt; dst is left untouched in that case.
	Load(ctx context.Context, learnerID string, kind Kind, dst any) (bool, error)
	Save(ctx context.Context, learnerID string, kind Kind, v any) error
	Close() error
}

var learnerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateLearnerID rejects ids that are unsafe as file names or keys.
func ValidateLearnerID(id string) error {
	if !learnerIDPattern.MatchString(id) {
		return fmt.Errorf("%w: learner id must be 1-64 letters, digits, '-' or '_'", models.ErrInvalidInput)
	}
	return nil
}

// decodeDocument unmarshals into a fresh value and only assigns dst on
// success, so a corrupt document never leaves dst half-filled.
func decodeDocument(data []byte, learnerID string, kind Kind, dst any) bool {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		panic("storage: Load destination must be a non-nil pointer")
	}

	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		log.Printf("[storage] WARNING: %v: %s/%s: %v (treating as empty)", models.ErrPersistenceCorrupt, learnerID, kind, err)
		return false
	}

	target.Elem().Set(fresh.Elem())
	return true
}
