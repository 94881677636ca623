package quiz

import "github.com/neurolearn/backend/internal/models"

// Latency thresholds in seconds. Each boundary belongs to the slower band.
const (
	fastCorrectBelow   = 3.0
	solidCorrectBelow  = 7.0
	fastIncorrectBelow = 5.0
)

// Grade reports whether chosen is the question's correct option.
func Grade(chosen int, q models.Question) bool {
	return chosen == q.CorrectAnswer
}

// Feedback classifies an answer by correctness and response latency.
func Feedback(correct bool, latency float64) models.FeedbackCategory {
	if correct {
		switch {
		case latency < fastCorrectBelow:
			return models.FeedbackFastCorrect
		case latency < solidCorrectBelow:
			return models.FeedbackSolidCorrect
		default:
			return models.FeedbackSlowCorrect
		}
	}
	if latency < fastIncorrectBelow {
		return models.FeedbackFastIncorrect
	}
	return models.FeedbackSlowIncorrect
}

var feedbackMessages = map[models.FeedbackCategory]string{
	models.FeedbackFastCorrect:   "Lightning fast! Amazing!",
	models.FeedbackSolidCorrect:  "Excellent work!",
	models.FeedbackSlowCorrect:   "Great job!",
	models.FeedbackFastIncorrect: "Quick thinking, but let's try again!",
	models.FeedbackSlowIncorrect: "Take your time, you've got this!",
}

func FeedbackMessage(c models.FeedbackCategory) string {
	return feedbackMessages[c]
}
