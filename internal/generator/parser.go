package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

// GeneratedQuestion is the wire shape the text-generation service returns.
// CorrectAnswer is a pointer so a missing field can be told apart from 0.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Type          string   `json:"type"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuestions decodes a JSON array of questions, tolerating markdown fences.
// Any question failing validation rejects the whole response.
func ParseQuestions(responseBody string) ([]models.Question, error) {
	cleaned := stripCodeFences(responseBody)
	if !strings.HasPrefix(cleaned, "[") || !strings.HasSuffix(cleaned, "]") {
		return nil, fmt.Errorf("expected a JSON array of questions")
	}

	var generated []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(generated); err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		qType := models.QuestionType(strings.TrimSpace(g.Type))
		if qType == "" {
			qType = models.QuestionMultipleChoice
		}
		options := make([]string, len(g.Options))
		for i, o := range g.Options {
			options[i] = strings.TrimSpace(o)
		}
		questions = append(questions, models.Question{
			Question:      strings.TrimSpace(g.Question),
			Options:       options,
			CorrectAnswer: *g.CorrectAnswer,
			Explanation:   strings.TrimSpace(g.Explanation),
			Type:          qType,
		})
	}

	checkTopicDiversity(questions)

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuestions(questions []GeneratedQuestion) error {
	if len(questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in response"}}
	}

	var errs []string
	correctAnswerCounts := make(map[int]int)

	for i, q := range questions {
		qNum := i + 1

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
		}

		if len(q.Options) != models.OptionCount {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", qNum, models.OptionCount, len(q.Options)))
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
			}
		}

		if q.CorrectAnswer == nil {
			errs = append(errs, fmt.Sprintf("question %d: missing correct_answer", qNum))
		} else if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: invalid correct_answer %d", qNum, *q.CorrectAnswer))
		} else {
			correctAnswerCounts[*q.CorrectAnswer]++
		}

		if strings.TrimSpace(q.Explanation) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}

		if t := strings.TrimSpace(q.Type); t != "" && !models.ValidQuestionTypes[models.QuestionType(t)] {
			errs = append(errs, fmt.Sprintf("question %d: unknown type %q", qNum, t))
		}
	}

	// Warn (but don't reject) if correct answers are clustered
	for idx, count := range correctAnswerCounts {
		if count > 2 && len(questions) >= 5 && count*2 > len(questions) {
			log.Printf("[generator] WARNING: correct answer index %d used by %d of %d questions", idx, count, len(questions))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// checkTopicDiversity warns if any two questions share >60% keyword overlap.
func checkTopicDiversity(questions []models.Question) {
	if len(questions) < 2 {
		return
	}

	tokenSets := make([]map[string]bool, len(questions))
	for i, q := range questions {
		tokenSets[i] = tokenize(q.Question)
	}

	for i := 0; i < len(questions); i++ {
		for j := i + 1; j < len(questions); j++ {
			overlap := jaccardSimilarity(tokenSets[i], tokenSets[j])
			if overlap > 0.60 {
				log.Printf("[generator] WARNING: questions %d and %d have %.0f%% keyword overlap", i+1, j+1, overlap*100)
			}
		}
	}
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		// Skip very short words (articles, prepositions)
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
