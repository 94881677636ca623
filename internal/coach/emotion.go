package coach

import (
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

// Keyword lists are checked in order: frustration wins over confidence,
// confidence over curiosity.
var emotionKeywords = []struct {
	emotion  models.Emotion
	keywords []string
}{
	{models.EmotionFrustrated, []string{"frustrated", "confused", "don't understand", "hard", "difficult", "stuck"}},
	{models.EmotionConfident, []string{"got it", "understand", "clear", "easy", "makes sense"}},
	{models.EmotionCurious, []string{"why", "how", "what if", "interesting", "tell me more"}},
}

// DetectEmotion classifies a learner message by substring keywords.
func DetectEmotion(message string) models.Emotion {
	lower := strings.ToLower(message)
	for _, group := range emotionKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.emotion
			}
		}
	}
	return models.EmotionNeutral
}
