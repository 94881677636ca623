package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/neurolearn/backend/internal/models"
)

func TestQuizSystemPrompt(t *testing.T) {
	prompt := QuizSystemPrompt(models.DifficultyHard, 7)

	required := []string{"exactly 7", "hard", "JSON array", "correct_answer", "explanation", "exactly 4 options", "Analysis"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("quiz system prompt missing keyword %q", keyword)
		}
	}
}

func TestAllDifficultiesHaveGuidance(t *testing.T) {
	for d := range models.ValidDifficulties {
		if difficultyGuidance[d] == "" {
			t.Errorf("difficulty %q has no guidance", d)
		}
	}
}

func TestTruncateContent(t *testing.T) {
	short := "short content"
	if got := truncateContent(short); got != short {
		t.Errorf("truncateContent(short) = %q, want unchanged", got)
	}

	long := strings.Repeat("é", maxContentChars+50)
	got := truncateContent(long)
	if n := utf8.RuneCountInString(got); n != maxContentChars {
		t.Errorf("truncateContent(long) has %d runes, want %d", n, maxContentChars)
	}
	if !utf8.ValidString(got) {
		t.Error("truncateContent split a multi-byte rune")
	}
}
