package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neurolearn/backend/internal/models"
)

// SessionStore holds active quiz sessions. Get returns ErrSessionNotFound
// for unknown ids. Implementations hand out copies, so callers must Save
// after mutating.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.QuizSession, error)
	Save(ctx context.Context, session *models.QuizSession) error
}

// ── Memory ──────────────────────────────────────────────

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.QuizSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.QuizSession)}
}

func (m *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *MemorySessionStore) Save(ctx context.Context, session *models.QuizSession) error {
	m.mu.Lock()
	m.sessions[session.SessionID] = cloneSession(session)
	m.mu.Unlock()
	return nil
}

func cloneSession(s *models.QuizSession) *models.QuizSession {
	c := *s
	c.Questions = make([]models.Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.Questions[i] = q
	}
	c.Responses = append([]models.AnswerResponse(nil), s.Responses...)
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return &c
}

// ── Redis ───────────────────────────────────────────────

// RedisSessionStore keeps each session as JSON under quiz:session:<id>.
// Every save refreshes the expiry, so abandoned sessions age out.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("quiz:session:%s", id)
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s models.QuizSession
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[quiz] WARNING: %v: session %s: %v", models.ErrPersistenceCorrupt, sessionID, err)
		return nil, models.ErrSessionNotFound
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, session *models.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
