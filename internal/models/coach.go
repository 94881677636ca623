package models

import "time"

type Emotion string

const (
	EmotionFrustrated Emotion = "frustrated"
	EmotionConfident  Emotion = "confident"
	EmotionCurious    Emotion = "curious"
	EmotionNeutral    Emotion = "neutral"
)

// LearnerProfile is the persisted learning profile used to personalize the coach.
type LearnerProfile struct {
	LearningStyle             string   `json:"learning_style"`
	DifficultyPreference      string   `json:"difficulty_preference"`
	TopicsStruggled           []string `json:"topics_struggled"`
	TopicsMastered            []string `json:"topics_mastered"`
	PreferredExplanationStyle string   `json:"preferred_explanation_style"`
	LanguagePreference        string   `json:"language_preference"`
}

func DefaultLearnerProfile() LearnerProfile {
	return LearnerProfile{
		LearningStyle:             "mixed",
		DifficultyPreference:      "medium",
		TopicsStruggled:           []string{},
		TopicsMastered:            []string{},
		PreferredExplanationStyle: "analogies",
		LanguagePreference:        "English",
	}
}

type ConversationEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	UserMessage   string    `json:"user_message"`
	CoachResponse string    `json:"coach_response"`
	Emotion       Emotion   `json:"emotion,omitempty"`
}

// ── Request Types ─────────────────────────────────────

type CoachMessageRequest struct {
	Message string `json:"message"`
	Topic   string `json:"topic,omitempty"`
}

// ── Response Types ────────────────────────────────────

type CoachReply struct {
	Response  string  `json:"response"`
	Emotion   Emotion `json:"emotion"`
	Available bool    `json:"available"`
}

type CoachHistoryResponse struct {
	Conversations []ConversationEntry `json:"conversations"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
