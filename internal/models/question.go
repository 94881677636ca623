package models

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ParseDifficulty accepts any casing; an empty string means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	if strings.TrimSpace(s) == "" {
		return DifficultyMedium, nil
	}
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !ValidDifficulties[d] {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, s)
	}
	return d, nil
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillBlank      QuestionType = "fill_blank"
)

var ValidQuestionTypes = map[QuestionType]bool{
	QuestionMultipleChoice: true,
	QuestionFillBlank:      true,
}

// OptionCount is the number of options every generated question carries.
const OptionCount = 4

// ── Core Structs ───────────────────────────────────────

type Question struct {
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Type          QuestionType `json:"type"`
}

// Validate checks the answer index against the options. Option order carries
// meaning, so callers that reorder options must remap CorrectAnswer first.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidInput)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: question needs at least 2 options, got %d", ErrInvalidInput, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct_answer %d out of range [0, %d)", ErrInvalidInput, q.CorrectAnswer, len(q.Options))
	}
	return nil
}

// ── Serving Types (strip answers) ──────────────────────

type QuizQuestion struct {
	Index    int          `json:"index"`
	Question string       `json:"question"`
	Options  []string     `json:"options"`
	Type     QuestionType `json:"type"`
}

func (q Question) ToQuizQuestion(index int) QuizQuestion {
	return QuizQuestion{
		Index:    index,
		Question: q.Question,
		Options:  q.Options,
		Type:     q.Type,
	}
}
