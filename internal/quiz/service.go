// Package quiz runs quiz sessions: creation from generated or supplied
// questions, answer grading, and the completion hand-off to the tracker.
package quiz

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

// QuestionGenerator produces questions for a new quiz.
type QuestionGenerator interface {
	Generate(ctx context.Context, content string, difficulty models.Difficulty, count int) ([]models.Question, models.QuestionSource, error)
}

// Tracker receives completed quizzes.
type Tracker interface {
	AppendHistory(ctx context.Context, learnerID string, rec models.QuizHistoryRecord) error
	RecordCompletion(ctx context.Context, learnerID string, score, total int) (models.StreakState, error)
}

// RewardFunc maps updated streak counters to an encouragement tier.
type RewardFunc func(models.StreakState) models.Reward

type Service struct {
	sessions     SessionStore
	generator    QuestionGenerator
	tracker      Tracker
	reward       RewardFunc
	defaultCount int

	// Serializes answers per session id. Learner locks belong to the tracker.
	locks *storage.KeyedMutex
	now   func() time.Time
}

func NewService(sessions SessionStore, gen QuestionGenerator, tracker Tracker, reward RewardFunc, defaultCount int) *Service {
	if defaultCount < 1 {
		defaultCount = 5
	}
	return &Service{
		sessions:     sessions,
		generator:    gen,
		tracker:      tracker,
		reward:       reward,
		defaultCount: defaultCount,
		locks:        storage.NewKeyedMutex(),
		now:          time.Now,
	}
}

// ── Creation ────────────────────────────────────────────

// Create starts a session over questions. The questions are fixed for the
// lifetime of the session.
func (s *Service) Create(ctx context.Context, learnerID, title string, questions []models.Question) (string, error) {
	if len(questions) == 0 {
		return "", fmt.Errorf("%w: a quiz needs at least one question", models.ErrInvalidInput)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return "", fmt.Errorf("question %d: %w", i, err)
		}
	}

	session := &models.QuizSession{
		SessionID:    uuid.New().String(),
		LearnerID:    learnerID,
		ContentTitle: title,
		Questions:    questions,
		Responses:    []models.AnswerResponse{},
		StartTime:    s.now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	log.Printf("[quiz] %s started session %s with %d questions", learnerID, session.SessionID, len(questions))
	return session.SessionID, nil
}

// CreateFromRequest generates questions from the request content unless the
// caller supplied its own, then starts a session.
func (s *Service) CreateFromRequest(ctx context.Context, learnerID string, req models.CreateQuizRequest) (*models.CreateQuizResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled quiz"
	}

	questions := req.Questions
	source := models.SourceProvided
	if len(questions) == 0 {
		difficulty, err := models.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, err
		}
		count := req.Count
		if count == 0 {
			count = s.defaultCount
		}
		questions, source, err = s.generator.Generate(ctx, req.Content, difficulty, count)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, fmt.Errorf("%w: content has no sentences usable for questions", models.ErrInvalidInput)
		}
	}

	id, err := s.Create(ctx, learnerID, title, questions)
	if err != nil {
		return nil, err
	}

	served := make([]models.QuizQuestion, len(questions))
	for i, q := range questions {
		served[i] = q.ToQuizQuestion(i)
	}

	return &models.CreateQuizResponse{
		SessionID:      id,
		Title:          title,
		Source:         source,
		Questions:      served,
		TotalQuestions: len(questions),
	}, nil
}

// ── Answering ───────────────────────────────────────────

// SubmitAnswer grades the current question and advances the session. The
// answer that completes the session also records history and streak. Errors
// leave the session unchanged.
func (s *Service) SubmitAnswer(ctx context.Context, learnerID, sessionID string, chosen int, latency float64) (*models.GradeResult, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.Get(ctx, learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, models.ErrQuizAlreadyCompleted
	}

	q := session.Questions[session.CurrentQuestion]
	if chosen < 0 || chosen >= len(q.Options) {
		return nil, fmt.Errorf("%w: answer %d out of range [0, %d)", models.ErrInvalidInput, chosen, len(q.Options))
	}
	if math.IsNaN(latency) || math.IsInf(latency, 0) || latency < 0 {
		return nil, fmt.Errorf("%w: response time must be a non-negative number of seconds", models.ErrInvalidInput)
	}

	correct := Grade(chosen, q)
	now := s.now()
	session.Responses = append(session.Responses, models.AnswerResponse{
		QuestionIndex: session.CurrentQuestion,
		AnswerGiven:   chosen,
		Correct:       correct,
		ResponseTime:  latency,
		Timestamp:     now,
	})
	if correct {
		session.Score++
	}
	session.CurrentQuestion++
	if session.CurrentQuestion == len(session.Questions) {
		session.Completed = true
		session.EndTime = &now
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	category := Feedback(correct, latency)
	result := &models.GradeResult{
		Correct:         correct,
		Explanation:     q.Explanation,
		Feedback:        category,
		FeedbackMessage: FeedbackMessage(category),
		Score:           session.Score,
		TotalQuestions:  len(session.Questions),
		Completed:       session.Completed,
	}

	if session.Completed {
		s.complete(ctx, session, result)
	}

	return result, nil
}

// complete hands a finished session to the tracker. Persistence failures are
// logged; the answer itself has already been recorded.
func (s *Service) complete(ctx context.Context, session *models.QuizSession, result *models.GradeResult) {
	if s.tracker == nil {
		return
	}

	if err := s.tracker.AppendHistory(ctx, session.LearnerID, models.NewHistoryRecord(session)); err != nil {
		log.Printf("[quiz] WARNING: failed to save history for session %s: %v", session.SessionID, err)
	}

	streak, err := s.tracker.RecordCompletion(ctx, session.LearnerID, session.Score, len(session.Questions))
	if err != nil {
		log.Printf("[quiz] WARNING: failed to update streak for %s: %v", session.LearnerID, err)
		return
	}
	result.Streak = &streak
	if s.reward != nil {
		reward := s.reward(streak)
		result.Reward = &reward
	}

	log.Printf("[quiz] session %s completed: %d/%d", session.SessionID, session.Score, len(session.Questions))
}

// ── Lookup ──────────────────────────────────────────────

// Get returns the session if it belongs to learnerID. Sessions owned by
// someone else are reported as not found.
func (s *Service) Get(ctx context.Context, learnerID, sessionID string) (*models.QuizSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.LearnerID != learnerID {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}
