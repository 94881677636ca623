package coach

import (
	"fmt"
	"slices"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

var trackedTopics = []string{"math", "science", "history", "english", "physics", "chemistry", "biology", "literature"}

// updateProfile records topics named in a frustrated message as struggled and
// in a confident one as mastered. It reports whether the profile changed.
func updateProfile(p *models.LearnerProfile, message string, emotion models.Emotion) bool {
	lower := strings.ToLower(message)
	changed := false
	for _, topic := range trackedTopics {
		if !strings.Contains(lower, topic) {
			continue
		}
		switch emotion {
		case models.EmotionFrustrated:
			if !slices.Contains(p.TopicsStruggled, topic) {
				p.TopicsStruggled = append(p.TopicsStruggled, topic)
				changed = true
			}
		case models.EmotionConfident:
			if !slices.Contains(p.TopicsMastered, topic) {
				p.TopicsMastered = append(p.TopicsMastered, topic)
				changed = true
			}
		}
	}
	return changed
}

var standingSuggestions = []string{
	"Try a focused 15-minute learning session",
	"Generate flashcards for active recall",
	"Check your focus analytics to optimize study time",
	"Take a quick quiz to test your understanding",
}

const maxSuggestions = 4

// Suggestions puts profile-driven advice ahead of the standing list.
func Suggestions(p models.LearnerProfile) []string {
	var out []string
	if len(p.TopicsStruggled) > 0 {
		out = append(out, fmt.Sprintf("Let's revisit %s with a different approach", joinFirst(p.TopicsStruggled, 2)))
	}
	if len(p.TopicsMastered) > 0 {
		out = append(out, fmt.Sprintf("Since you've mastered %s, let's explore advanced concepts", joinFirst(p.TopicsMastered, 2)))
	}
	out = append(out, standingSuggestions...)
	return out[:maxSuggestions]
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

var motivationalMessages = []string{
	"Every expert was once a beginner. You're making great progress!",
	"Your brain is literally rewiring itself as you learn. That's amazing!",
	"Challenges are just opportunities to grow stronger mentally.",
	"Small consistent steps lead to big achievements.",
	"The fact that you're here learning shows your dedication!",
}

// MotivationalMessage rotates through the messages by day of month.
func MotivationalMessage(day int) string {
	return motivationalMessages[day%len(motivationalMessages)]
}
