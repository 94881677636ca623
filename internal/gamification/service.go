package gamification

import (
	"context"
	"fmt"
	"log"

	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

// DefaultAnalyticsWindow is how many recent records Analytics considers.
const DefaultAnalyticsWindow = 20

// Service tracks completed quizzes per learner: streak counters and the
// append-only history that analytics are derived from.
type Service struct {
	store *Store
	locks *storage.KeyedMutex
}

// NewService shares locks with any other component that writes the same
// learner's documents.
func NewService(store *Store, locks *storage.KeyedMutex) *Service {
	if locks == nil {
		locks = storage.NewKeyedMutex()
	}
	return &Service{store: store, locks: locks}
}

// ── Streak ──────────────────────────────────────────────

// RecordCompletion counts one finished quiz. A quiz with at least 60%
// correct extends the current streak, anything less resets it.
func (s *Service) RecordCompletion(ctx context.Context, learnerID string, score, total int) (models.StreakState, error) {
	if total <= 0 || score < 0 || score > total {
		return models.StreakState{}, fmt.Errorf("%w: score %d of %d", models.ErrInvalidInput, score, total)
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	st, err := s.store.GetStreak(ctx, learnerID)
	if err != nil {
		return models.StreakState{}, err
	}

	st.TotalQuizzes++
	if passed(score, total) {
		st.CurrentStreak++
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}
	} else {
		st.CurrentStreak = 0
	}

	if err := s.store.SaveStreak(ctx, learnerID, st); err != nil {
		return models.StreakState{}, err
	}

	log.Printf("[gamification] %s completed quiz %d/%d: streak %d (best %d)", learnerID, score, total, st.CurrentStreak, st.BestStreak)
	return st, nil
}

// passed reports score/total >= 0.6 without floating point.
func passed(score, total int) bool {
	return 5*score >= 3*total
}

func (s *Service) Streak(ctx context.Context, learnerID string) (models.StreakState, error) {
	return s.store.GetStreak(ctx, learnerID)
}

// StreakSummary bundles the counters with the reward tier and the
// milestones they unlock.
func (s *Service) StreakSummary(ctx context.Context, learnerID string) (*models.StreakResponse, error) {
	st, err := s.store.GetStreak(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return &models.StreakResponse{
		Streak:       st,
		Reward:       RewardFor(st),
		Achievements: CheckAchievements(st),
	}, nil
}

// ── History ─────────────────────────────────────────────

func (s *Service) AppendHistory(ctx context.Context, learnerID string, rec models.QuizHistoryRecord) error {
	unlock := s.locks.Lock(learnerID)
	defer unlock()

	records, err := s.store.GetHistory(ctx, learnerID)
	if err != nil {
		return err
	}
	records = append(records, rec)
	return s.store.SaveHistory(ctx, learnerID, records)
}

// History returns the most recent limit records, oldest first. A limit of
// zero or less returns everything.
func (s *Service) History(ctx context.Context, learnerID string, limit int) ([]models.QuizHistoryRecord, error) {
	records, err := s.store.GetHistory(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	records = lastN(records, limit)
	if records == nil {
		records = []models.QuizHistoryRecord{}
	}
	return records, nil
}

func lastN(records []models.QuizHistoryRecord, n int) []models.QuizHistoryRecord {
	if n > 0 && len(records) > n {
		return records[len(records)-n:]
	}
	return records
}

// ── Analytics ───────────────────────────────────────────

func (s *Service) Analytics(ctx context.Context, learnerID string, window int) (models.AnalyticsSummary, error) {
	if window <= 0 {
		window = DefaultAnalyticsWindow
	}
	records, err := s.store.GetHistory(ctx, learnerID)
	if err != nil {
		return models.AnalyticsSummary{}, err
	}
	return ComputeAnalytics(lastN(records, window)), nil
}
