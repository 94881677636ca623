package gamification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

func newTestService() *Service {
	return NewService(NewStore(storage.NewMemoryStore()), storage.NewKeyedMutex())
}

func TestPassed(t *testing.T) {
	tests := []struct {
		score, total int
		want         bool
	}{
		{3, 5, true},
		{2, 5, false},
		{5, 5, true},
		{0, 5, false},
		{6, 10, true},
		{59, 100, false},
		{60, 100, true},
		{1, 1, true},
		{2, 3, true},
		{1, 2, false},
	}
	for _, tt := range tests {
		if got := passed(tt.score, tt.total); got != tt.want {
			t.Errorf("passed(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestRecordCompletion_StreakSequence(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	// pass, pass, fail, pass
	steps := []struct {
		score       int
		wantCurrent int
		wantBest    int
	}{
		{4, 1, 1},
		{3, 2, 2},
		{1, 0, 2},
		{5, 1, 2},
	}
	for i, step := range steps {
		st, err := s.RecordCompletion(ctx, "learner-1", step.score, 5)
		if err != nil {
			t.Fatalf("step %d: RecordCompletion: %v", i, err)
		}
		if st.CurrentStreak != step.wantCurrent || st.BestStreak != step.wantBest || st.TotalQuizzes != i+1 {
			t.Errorf("step %d: got %+v, want current=%d best=%d total=%d",
				i, st, step.wantCurrent, step.wantBest, i+1)
		}
	}

	stored, err := s.Streak(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Streak: %v", err)
	}
	want := models.StreakState{CurrentStreak: 1, BestStreak: 2, TotalQuizzes: 4}
	if stored != want {
		t.Errorf("Streak() = %+v, want %+v", stored, want)
	}
}

func TestRecordCompletion_InvalidScore(t *testing.T) {
	s := newTestService()
	cases := [][2]int{{1, 0}, {-1, 5}, {6, 5}}
	for _, c := range cases {
		_, err := s.RecordCompletion(context.Background(), "learner-1", c[0], c[1])
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("RecordCompletion(%d, %d) error = %v, want ErrInvalidInput", c[0], c[1], err)
		}
	}
}

func TestRecordCompletion_ConcurrentSameLearner(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RecordCompletion(ctx, "learner-1", 5, 5); err != nil {
				t.Errorf("RecordCompletion: %v", err)
			}
		}()
	}
	wg.Wait()

	st, _ := s.Streak(ctx, "learner-1")
	if st.TotalQuizzes != 20 || st.CurrentStreak != 20 || st.BestStreak != 20 {
		t.Errorf("after 20 concurrent passes got %+v, want all counters 20", st)
	}
}

func TestRecordCompletion_LearnersIsolated(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	s.RecordCompletion(ctx, "alice", 5, 5)
	s.RecordCompletion(ctx, "alice", 5, 5)

	st, _ := s.Streak(ctx, "bob")
	if st != (models.StreakState{}) {
		t.Errorf("bob's streak = %+v, want zero", st)
	}
}

func record(id string, accuracy float64) models.QuizHistoryRecord {
	return models.QuizHistoryRecord{
		SessionID:       id,
		Score:           int(accuracy * 10),
		TotalQuestions:  10,
		Accuracy:        accuracy,
		AvgResponseTime: 4,
	}
}

func TestHistory_OrderAndLimit(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		if err := s.AppendHistory(ctx, "learner-1", record(id, 0.5)); err != nil {
			t.Fatalf("AppendHistory: %v", err)
		}
	}

	got, err := s.History(ctx, "learner-1", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 || got[0].SessionID != "c" || got[1].SessionID != "d" {
		t.Errorf("History(2) = %+v, want [c d]", got)
	}

	all, _ := s.History(ctx, "learner-1", 0)
	if len(all) != 4 {
		t.Errorf("History(0) returned %d records, want 4", len(all))
	}

	empty, _ := s.History(ctx, "nobody", 10)
	if empty == nil || len(empty) != 0 {
		t.Errorf("History for new learner = %v, want empty non-nil slice", empty)
	}
}

func TestComputeAnalytics(t *testing.T) {
	repeat := func(acc float64, n int) []models.QuizHistoryRecord {
		var out []models.QuizHistoryRecord
		for i := 0; i < n; i++ {
			out = append(out, record("x", acc))
		}
		return out
	}

	tests := []struct {
		name    string
		records []models.QuizHistoryRecord
		want    models.Trend
	}{
		{"none", nil, models.TrendNoData},
		{"too few", repeat(0.8, 9), models.TrendInsufficient},
		{"improving", append(repeat(0.4, 5), repeat(0.8, 5)...), models.TrendImproving},
		{"declining", append(repeat(0.8, 5), repeat(0.4, 5)...), models.TrendDeclining},
		{"equal is stable", repeat(0.6, 10), models.TrendStable},
		{"only last ten count", append(repeat(0.0, 5), append(repeat(0.6, 5), repeat(0.6, 5)...)...), models.TrendStable},
	}
	for _, tt := range tests {
		got := ComputeAnalytics(tt.records)
		if got.ImprovementTrend != tt.want {
			t.Errorf("%s: trend = %q, want %q", tt.name, got.ImprovementTrend, tt.want)
		}
		if got.TotalQuizzes != len(tt.records) {
			t.Errorf("%s: total = %d, want %d", tt.name, got.TotalQuizzes, len(tt.records))
		}
	}

	empty := ComputeAnalytics(nil)
	if empty.AvgAccuracy != 0 || empty.AvgResponseTime != 0 {
		t.Errorf("empty summary = %+v, want zero averages", empty)
	}

	mixed := ComputeAnalytics(append(repeat(0.4, 5), repeat(0.8, 5)...))
	if mixed.AvgAccuracy < 0.599 || mixed.AvgAccuracy > 0.601 {
		t.Errorf("avg accuracy = %v, want 0.6", mixed.AvgAccuracy)
	}
	if mixed.AvgResponseTime != 4 {
		t.Errorf("avg response time = %v, want 4", mixed.AvgResponseTime)
	}
}

func TestAnalytics_UsesWindow(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		s.AppendHistory(ctx, "learner-1", record("x", 0.5))
	}

	got, err := s.Analytics(ctx, "learner-1", 0)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if got.TotalQuizzes != DefaultAnalyticsWindow {
		t.Errorf("TotalQuizzes = %d, want %d", got.TotalQuizzes, DefaultAnalyticsWindow)
	}

	none, _ := s.Analytics(ctx, "nobody", 20)
	if none.ImprovementTrend != models.TrendNoData {
		t.Errorf("trend for empty history = %q, want %q", none.ImprovementTrend, models.TrendNoData)
	}
}

func TestRewardFor(t *testing.T) {
	tests := []struct {
		current, best int
		want          models.RewardTier
	}{
		{0, 0, models.RewardKeepGoing},
		{0, 7, models.RewardKeepGoing},
		{1, 1, models.RewardNiceStart},
		{2, 2, models.RewardNiceStart},
		{3, 3, models.RewardGreat},
		{4, 4, models.RewardGreat},
		{5, 5, models.RewardAmazing},
		{9, 9, models.RewardAmazing},
		{10, 10, models.RewardLegendary},
		{25, 25, models.RewardLegendary},
		{2, 5, models.RewardChasing},
		{9, 10, models.RewardChasing},
	}
	for _, tt := range tests {
		got := RewardFor(models.StreakState{CurrentStreak: tt.current, BestStreak: tt.best})
		if got.Tier != tt.want {
			t.Errorf("RewardFor(%d, %d) = %q, want %q", tt.current, tt.best, got.Tier, tt.want)
		}
		if got.Message == "" {
			t.Errorf("RewardFor(%d, %d) has empty message", tt.current, tt.best)
		}
	}
}

func TestCheckAchievements(t *testing.T) {
	got := CheckAchievements(models.StreakState{CurrentStreak: 1, BestStreak: 5, TotalQuizzes: 12})
	want := []string{"first_quiz", "streak_3", "streak_5", "quizzes_10"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("CheckAchievements = %v, want %v", got, want)
	}

	if none := CheckAchievements(models.StreakState{}); len(none) != 0 {
		t.Errorf("CheckAchievements(zero) = %v, want none", none)
	}

	for _, key := range got {
		if _, ok := Achievements[key]; !ok {
			t.Errorf("achievement %q has no definition", key)
		}
	}
}

func TestHandler_GetStreak(t *testing.T) {
	s := newTestService()
	s.RecordCompletion(context.Background(), "learner-1", 5, 5)
	h := NewHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/streak", nil)
	req = req.WithContext(middleware.WithLearnerID(req.Context(), "learner-1"))
	rec := httptest.NewRecorder()
	h.GetStreak(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"current_streak":1`) {
		t.Errorf("body = %s, want current_streak 1", rec.Body.String())
	}
}

func TestHandler_RequiresLearner(t *testing.T) {
	h := NewHandler(newTestService())
	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/api/v1/progress/analytics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRecordCompletion_FromPriorState(t *testing.T) {
	prior := models.StreakState{CurrentStreak: 4, BestStreak: 5, TotalQuizzes: 10}
	tests := []struct {
		score int
		want  models.StreakState
	}{
		{6, models.StreakState{CurrentStreak: 5, BestStreak: 5, TotalQuizzes: 11}},
		{5, models.StreakState{CurrentStreak: 0, BestStreak: 5, TotalQuizzes: 11}},
	}
	for _, tt := range tests {
		store := NewStore(storage.NewMemoryStore())
		if err := store.SaveStreak(context.Background(), "learner-1", prior); err != nil {
			t.Fatalf("SaveStreak: %v", err)
		}
		s := NewService(store, nil)

		got, err := s.RecordCompletion(context.Background(), "learner-1", tt.score, 10)
		if err != nil {
			t.Fatalf("RecordCompletion: %v", err)
		}
		if got != tt.want {
			t.Errorf("RecordCompletion(%d/10) = %+v, want %+v", tt.score, got, tt.want)
		}
	}
}
