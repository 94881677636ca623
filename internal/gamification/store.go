package gamification

import (
	"context"
	"fmt"

	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

// Store reads and writes the streak and quiz history documents. It does not
// lock; Service holds the learner lock around every read-modify-write.
type Store struct {
	docs storage.Store
}

func NewStore(docs storage.Store) *Store {
	return &Store{docs: docs}
}

// ── Streaks ─────────────────────────────────────────────

// GetStreak returns the stored streak counters, or zeros when none exist.
func (s *Store) GetStreak(ctx context.Context, learnerID string) (models.StreakState, error) {
	var st models.StreakState
	if _, err := s.docs.Load(ctx, learnerID, storage.KindStreaks, &st); err != nil {
		return models.StreakState{}, fmt.Errorf("load streak: %w", err)
	}
	return st, nil
}

func (s *Store) SaveStreak(ctx context.Context, learnerID string, st models.StreakState) error {
	if err := s.docs.Save(ctx, learnerID, storage.KindStreaks, st); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// ── History ─────────────────────────────────────────────

// GetHistory returns every stored record, oldest first.
func (s *Store) GetHistory(ctx context.Context, learnerID string) ([]models.QuizHistoryRecord, error) {
	var records []models.QuizHistoryRecord
	if _, err := s.docs.Load(ctx, learnerID, storage.KindQuizHistory, &records); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return records, nil
}

func (s *Store) SaveHistory(ctx context.Context, learnerID string, records []models.QuizHistoryRecord) error {
	if err := s.docs.Save(ctx, learnerID, storage.KindQuizHistory, records); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
