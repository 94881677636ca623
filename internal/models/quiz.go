package models

import "time"

type FeedbackCategory string

const (
	FeedbackFastCorrect   FeedbackCategory = "fast-correct"
	FeedbackSolidCorrect  FeedbackCategory = "solid-correct"
	FeedbackSlowCorrect   FeedbackCategory = "slow-correct"
	FeedbackFastIncorrect FeedbackCategory = "fast-incorrect"
	FeedbackSlowIncorrect FeedbackCategory = "slow-incorrect"
)

type QuestionSource string

const (
	SourceAI       QuestionSource = "ai"
	SourceFallback QuestionSource = "fallback"
	SourceProvided QuestionSource = "provided"
)

// ── Core Structs ───────────────────────────────────────

type QuizSession struct {
	SessionID       string           `json:"session_id"`
	LearnerID       string           `json:"learner_id"`
	ContentTitle    string           `json:"content_title"`
	Questions       []Question       `json:"questions"`
	CurrentQuestion int              `json:"current_question"`
	Score           int              `json:"score"`
	Responses       []AnswerResponse `json:"responses"`
	Completed       bool             `json:"completed"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         *time.Time       `json:"end_time,omitempty"`
}

// AverageResponseTime is the mean latency over the recorded responses.
func (s *QuizSession) AverageResponseTime() float64 {
	if len(s.Responses) == 0 {
		return 0
	}
	var sum float64
	for _, r := range s.Responses {
		sum += r.ResponseTime
	}
	return sum / float64(len(s.Responses))
}

type AnswerResponse struct {
	QuestionIndex int       `json:"question_index"`
	AnswerGiven   int       `json:"answer_given"`
	Correct       bool      `json:"correct"`
	ResponseTime  float64   `json:"response_time"`
	Timestamp     time.Time `json:"timestamp"`
}

type GradeResult struct {
	Correct         bool             `json:"correct"`
	Explanation     string           `json:"explanation"`
	Feedback        FeedbackCategory `json:"feedback"`
	FeedbackMessage string           `json:"feedback_message"`
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"total_questions"`
	Completed       bool             `json:"completed"`
	Streak          *StreakState     `json:"streak,omitempty"`
	Reward          *Reward          `json:"reward,omitempty"`
}

// ── Request Types ─────────────────────────────────────

type CreateQuizRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Difficulty string     `json:"difficulty"`
	Count      int        `json:"count"`
	Questions  []Question `json:"questions,omitempty"`
}

type SubmitAnswerRequest struct {
	AnswerIndex         *int    `json:"answer_index"`
	ResponseTimeSeconds float64 `json:"response_time_seconds"`
}

// ── Response Types ────────────────────────────────────

type CreateQuizResponse struct {
	SessionID      string         `json:"session_id"`
	Title          string         `json:"title"`
	Source         QuestionSource `json:"source"`
	Questions      []QuizQuestion `json:"questions"`
	TotalQuestions int            `json:"total_questions"`
}

type QuizSessionView struct {
	SessionID       string           `json:"session_id"`
	ContentTitle    string           `json:"content_title"`
	CurrentQuestion int              `json:"current_question"`
	TotalQuestions  int              `json:"total_questions"`
	Score           int              `json:"score"`
	Completed       bool             `json:"completed"`
	Next            *QuizQuestion    `json:"next,omitempty"`
	Responses       []AnswerResponse `json:"responses"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         *time.Time       `json:"end_time,omitempty"`
}

// ToView hides the answer key: only the next unanswered question is exposed.
func (s *QuizSession) ToView() QuizSessionView {
	v := QuizSessionView{
		SessionID:       s.SessionID,
		ContentTitle:    s.ContentTitle,
		CurrentQuestion: s.CurrentQuestion,
		TotalQuestions:  len(s.Questions),
		Score:           s.Score,
		Completed:       s.Completed,
		Responses:       s.Responses,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
	}
	if v.Responses == nil {
		v.Responses = []AnswerResponse{}
	}
	if !s.Completed && s.CurrentQuestion < len(s.Questions) {
		next := s.Questions[s.CurrentQuestion].ToQuizQuestion(s.CurrentQuestion)
		v.Next = &next
	}
	return v
}
