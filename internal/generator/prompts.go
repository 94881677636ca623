package generator

import (
	"fmt"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

// maxContentChars bounds how much source text is sent to the service.
const maxContentChars = 2000

var difficultyGuidance = map[models.Difficulty]string{
	models.DifficultyEasy:   "Direct recall and definitions.",
	models.DifficultyMedium: "Understanding and application of the ideas.",
	models.DifficultyHard:   "Analysis, synthesis and evaluation across ideas.",
}

// QuizSystemPrompt asks for exactly count questions as a bare JSON array.
func QuizSystemPrompt(difficulty models.Difficulty, count int) string {
	guidance, ok := difficultyGuidance[difficulty]
	if !ok {
		guidance = difficultyGuidance[models.DifficultyMedium]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate exactly %d quiz questions from the provided content.\n", count))
	sb.WriteString(fmt.Sprintf("Difficulty level: %s (%s)\n\n", difficulty, guidance))

	sb.WriteString("Format each question as a JSON object with this structure:\n")
	sb.WriteString(`{
  "question": "The question text",
  "options": ["A", "B", "C", "D"],
  "correct_answer": 0,
  "explanation": "Why this answer is correct",
  "type": "multiple_choice"
}`)
	sb.WriteString("\n\n")

	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Each question must have exactly %d options\n", models.OptionCount))
	sb.WriteString("- correct_answer is the 0-based index of the correct option\n")
	sb.WriteString("- Use clear, concise language and avoid trick questions\n")
	sb.WriteString("- Include context when needed\n")
	sb.WriteString("- Focus on understanding over memorization\n\n")

	sb.WriteString("Return only a valid JSON array of questions, with no surrounding text.")

	return sb.String()
}

// truncateContent cuts content to maxContentChars runes.
func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= maxContentChars {
		return content
	}
	return string(runes[:maxContentChars])
}
