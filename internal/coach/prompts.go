package coach

import (
	"fmt"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

const coachPersona = `You are an empathetic AI learning coach specialized in neuro-friendly education. Your personality:
- Patient, encouraging, and supportive
- Uses analogies, stories, and real-world examples
- Breaks complex concepts into digestible pieces
- Celebrates small wins and progress
- Adapts explanation style based on user needs`

var emotionGuidance = map[models.Emotion]string{
	models.EmotionFrustrated: `The student seems frustrated. Your response should:
- Acknowledge their frustration with empathy
- Break down the concept into smaller, easier steps
- Use encouraging language like "It's totally normal to find this challenging"
- Offer alternative explanation methods
- Suggest taking a short break if needed`,

	models.EmotionConfident: `The student seems confident. Your response should:
- Celebrate their understanding
- Offer slightly more advanced concepts or connections
- Ask thoughtful questions to deepen understanding
- Encourage them to explain concepts back to you`,

	models.EmotionCurious: `The student is curious and engaged. Your response should:
- Feed their curiosity with interesting details
- Make connections to other topics they might find fascinating
- Use "what if" scenarios and thought experiments
- Encourage exploration and questions`,

	models.EmotionNeutral: `The student seems neutral. Your response should:
- Be engaging and try to spark interest
- Use relatable examples and analogies
- Check for understanding
- Keep the energy positive`,
}

// promptExchanges is how many past exchanges are replayed to the model.
const promptExchanges = 3

// SystemPrompt adapts the coach persona to the learner's mood, profile and
// current topic.
func SystemPrompt(emotion models.Emotion, topic string, profile models.LearnerProfile) string {
	var b strings.Builder
	b.WriteString(coachPersona)
	b.WriteString("\n\n")
	b.WriteString(emotionGuidance[emotion])

	fmt.Fprintf(&b, `

User Learning Profile:
- Preferred explanation style: %s
- Learning difficulty preference: %s
- Previously struggled with: %s
- Has mastered: %s`,
		profile.PreferredExplanationStyle,
		profile.DifficultyPreference,
		strings.Join(profile.TopicsStruggled, ", "),
		strings.Join(profile.TopicsMastered, ", "),
	)

	if topic = strings.TrimSpace(topic); topic != "" {
		fmt.Fprintf(&b, "\n\nCurrent topic being studied: %s", topic)
	}
	return b.String()
}

// UserPrompt replays the most recent exchanges before the new message.
func UserPrompt(history []models.ConversationEntry, message string) string {
	if len(history) > promptExchanges {
		history = history[len(history)-promptExchanges:]
	}
	if len(history) == 0 {
		return message
	}

	var b strings.Builder
	b.WriteString("Recent conversation:\n")
	for _, e := range history {
		fmt.Fprintf(&b, "Student: %s\nCoach: %s\n", e.UserMessage, e.CoachResponse)
	}
	fmt.Fprintf(&b, "\nStudent: %s", message)
	return b.String()
}
