package models

import "time"

// ── History Types ────────────────────────────────────────

type QuizHistoryRecord struct {
	SessionID       string    `json:"session_id"`
	ContentTitle    string    `json:"content_title"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	Accuracy        float64   `json:"accuracy"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	AvgResponseTime float64   `json:"avg_response_time"`
}

// NewHistoryRecord summarizes a completed session.
func NewHistoryRecord(s *QuizSession) QuizHistoryRecord {
	rec := QuizHistoryRecord{
		SessionID:       s.SessionID,
		ContentTitle:    s.ContentTitle,
		Score:           s.Score,
		TotalQuestions:  len(s.Questions),
		StartTime:       s.StartTime,
		AvgResponseTime: s.AverageResponseTime(),
	}
	if rec.TotalQuestions > 0 {
		rec.Accuracy = float64(s.Score) / float64(rec.TotalQuestions)
	}
	if s.EndTime != nil {
		rec.EndTime = *s.EndTime
	}
	return rec
}

type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendDeclining    Trend = "declining"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient-data"
	TrendNoData       Trend = "no-data"
)

// ── Response Types ────────────────────────────────────────

type AnalyticsSummary struct {
	AvgAccuracy      float64 `json:"avg_accuracy"`
	AvgResponseTime  float64 `json:"avg_response_time"`
	ImprovementTrend Trend   `json:"improvement_trend"`
	TotalQuizzes     int     `json:"total_quizzes"`
}

type HistoryListResponse struct {
	Records []QuizHistoryRecord `json:"records"`
	Total   int                 `json:"total"`
}
