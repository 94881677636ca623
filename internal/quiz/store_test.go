package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/neurolearn/backend/internal/models"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client, ttl), mr
}

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	session := &models.QuizSession{
		SessionID:    "s-1",
		LearnerID:    "learner-1",
		ContentTitle: "Cells",
		Questions:    sampleQuestions(2),
		Responses:    []models.AnswerResponse{},
		StartTime:    time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("quiz:session:s-1") {
		t.Fatal("session not stored under quiz:session:s-1")
	}

	got, err := store.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LearnerID != "learner-1" || len(got.Questions) != 2 || !got.StartTime.Equal(session.StartTime) {
		t.Errorf("Get = %+v, want saved session", got)
	}
}

func TestRedisSessionStore_Missing(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisSessionStore_CorruptIsNotFound(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	mr.Set("quiz:session:bad", "{not json")

	if _, err := store.Get(context.Background(), "bad"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Get(corrupt) error = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisSessionStore_ExpiryRefreshedOnSave(t *testing.T) {
	store, mr := newRedisStore(t, 10*time.Minute)
	ctx := context.Background()
	session := &models.QuizSession{SessionID: "s-2", LearnerID: "learner-1", Questions: sampleQuestions(1)}

	store.Save(ctx, session)
	mr.FastForward(8 * time.Minute)
	if ttl := mr.TTL("quiz:session:s-2"); ttl != 2*time.Minute {
		t.Fatalf("TTL after 8m = %v, want 2m", ttl)
	}

	session.CurrentQuestion = 1
	store.Save(ctx, session)
	if ttl := mr.TTL("quiz:session:s-2"); ttl != 10*time.Minute {
		t.Errorf("TTL after save = %v, want 10m", ttl)
	}

	mr.FastForward(11 * time.Minute)
	if _, err := store.Get(ctx, "s-2"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Get(expired) error = %v, want ErrSessionNotFound", err)
	}
}

func TestService_WithRedisSessions(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	env := newTestEnv()
	svc := NewService(store, env.service.generator, env.tracker, env.service.reward, 5)
	ctx := context.Background()

	id, err := svc.Create(ctx, "learner-1", "One", sampleQuestions(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	res, err := svc.SubmitAnswer(ctx, "learner-1", id, 0, 1.5)
	if err != nil || !res.Completed {
		t.Fatalf("SubmitAnswer = %+v, %v", res, err)
	}
	if _, err := svc.SubmitAnswer(ctx, "learner-1", id, 0, 1); !errors.Is(err, models.ErrQuizAlreadyCompleted) {
		t.Errorf("answer after completion error = %v, want ErrQuizAlreadyCompleted", err)
	}
}
