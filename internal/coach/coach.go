// Package coach produces conversational coaching replies adapted to the
// learner's mood and profile, and keeps the per-learner conversation log.
package coach

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/neurolearn/backend/internal/llm"
	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

const (
	// maxStoredConversations caps the persisted log; older entries are dropped.
	maxStoredConversations = 50
	// recentConversations is how much of the log History returns.
	recentConversations = 10

	replyTimeout = 60 * time.Second
)

const (
	unavailableReply = "AI Coach not available. Configure a text generation provider to chat with your coach."
	troubleReply     = "Sorry, I'm having trouble right now. Please try again in a moment."
)

type Coach struct {
	llm   llm.Client
	docs  storage.Store
	locks *storage.KeyedMutex
	now   func() time.Time
}

// NewCoach accepts a nil client; replies then degrade to a fixed message.
func NewCoach(client llm.Client, docs storage.Store, locks *storage.KeyedMutex) *Coach {
	if locks == nil {
		locks = storage.NewKeyedMutex()
	}
	return &Coach{llm: client, docs: docs, locks: locks, now: time.Now}
}

// ── Conversation ────────────────────────────────────────

// Respond answers one learner message. Service trouble yields a fixed reply
// with Available=false rather than an error; such exchanges are not logged.
func (c *Coach) Respond(ctx context.Context, learnerID, message, topic string) (*models.CoachReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is empty", models.ErrInvalidInput)
	}
	if err := storage.ValidateLearnerID(learnerID); err != nil {
		return nil, err
	}

	emotion := DetectEmotion(message)

	if c.llm == nil {
		return &models.CoachReply{Response: unavailableReply, Emotion: emotion}, nil
	}

	profile, err := c.Profile(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	history, err := c.History(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	resp, err := c.llm.Generate(genCtx, SystemPrompt(emotion, topic, profile), UserPrompt(history, message))
	if err != nil {
		log.Printf("[coach] WARNING: %v: %v", models.ErrServiceUnavailable, err)
		return &models.CoachReply{Response: troubleReply, Emotion: emotion}, nil
	}
	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		log.Printf("[coach] WARNING: %v: empty reply", models.ErrServiceUnavailable)
		return &models.CoachReply{Response: troubleReply, Emotion: emotion}, nil
	}

	if err := c.record(ctx, learnerID, message, reply, emotion); err != nil {
		log.Printf("[coach] WARNING: failed to save conversation for %s: %v", learnerID, err)
	}

	return &models.CoachReply{Response: reply, Emotion: emotion, Available: true}, nil
}

// record appends the exchange and applies profile updates under the
// learner lock.
func (c *Coach) record(ctx context.Context, learnerID, message, reply string, emotion models.Emotion) error {
	unlock := c.locks.Lock(learnerID)
	defer unlock()

	var entries []models.ConversationEntry
	if _, err := c.docs.Load(ctx, learnerID, storage.KindConversations, &entries); err != nil {
		return err
	}
	entries = append(entries, models.ConversationEntry{
		Timestamp:     c.now(),
		UserMessage:   message,
		CoachResponse: reply,
		Emotion:       emotion,
	})
	if len(entries) > maxStoredConversations {
		entries = entries[len(entries)-maxStoredConversations:]
	}
	if err := c.docs.Save(ctx, learnerID, storage.KindConversations, entries); err != nil {
		return err
	}

	profile, err := c.Profile(ctx, learnerID)
	if err != nil {
		return err
	}
	if updateProfile(&profile, message, emotion) {
		return c.docs.Save(ctx, learnerID, storage.KindProfile, profile)
	}
	return nil
}

// History returns the most recent exchanges, oldest first.
func (c *Coach) History(ctx context.Context, learnerID string) ([]models.ConversationEntry, error) {
	var entries []models.ConversationEntry
	if _, err := c.docs.Load(ctx, learnerID, storage.KindConversations, &entries); err != nil {
		return nil, err
	}
	if len(entries) > recentConversations {
		entries = entries[len(entries)-recentConversations:]
	}
	if entries == nil {
		entries = []models.ConversationEntry{}
	}
	return entries, nil
}

// ── Profile ─────────────────────────────────────────────

// Profile returns the stored learner profile or the defaults.
func (c *Coach) Profile(ctx context.Context, learnerID string) (models.LearnerProfile, error) {
	profile := models.DefaultLearnerProfile()
	if _, err := c.docs.Load(ctx, learnerID, storage.KindProfile, &profile); err != nil {
		return models.LearnerProfile{}, err
	}
	return profile, nil
}

func (c *Coach) Suggestions(ctx context.Context, learnerID string) ([]string, error) {
	profile, err := c.Profile(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return Suggestions(profile), nil
}

func (c *Coach) Motivation() string {
	return MotivationalMessage(c.now().Day())
}
