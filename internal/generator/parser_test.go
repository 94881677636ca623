package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func validQuestionsJSON(count int) string {
	questions := make([]map[string]any, count)
	for i := 0; i < count; i++ {
		questions[i] = map[string]any{
			"question":       fmt.Sprintf("Question %d about cellular respiration stage %d?", i+1, i),
			"options":        []string{"glycolysis", "krebs cycle", "electron transport", "fermentation"},
			"correct_answer": i % 4,
			"explanation":    "The correct option names the stage described in the content.",
			"type":           "multiple_choice",
		}
	}
	data, _ := json.Marshal(questions)
	return string(data)
}

func TestParseQuestions_ValidJSON(t *testing.T) {
	questions, err := ParseQuestions(validQuestionsJSON(5))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			t.Errorf("question %d: correct_answer %d out of range", i+1, q.CorrectAnswer)
		}
	}
}

func TestParseQuestions_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuestionsJSON(3) + "\n```"

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}

	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseQuestions_DefaultsType(t *testing.T) {
	input := `[{"question":"What powers the cell?","options":["a","b","c","d"],"correct_answer":2,"explanation":"c is right"}]`

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if questions[0].Type != "multiple_choice" {
		t.Errorf("expected default type multiple_choice, got %q", questions[0].Type)
	}
	if questions[0].CorrectAnswer != 2 {
		t.Errorf("expected correct_answer 2, got %d", questions[0].CorrectAnswer)
	}
}

func TestParseQuestions_WrongTopLevelShape(t *testing.T) {
	input := `{"questions":` + validQuestionsJSON(2) + `}`

	_, err := ParseQuestions(input)
	if err == nil {
		t.Fatal("expected error for object top-level shape")
	}
}

func TestParseQuestions_MalformedJSON(t *testing.T) {
	_, err := ParseQuestions("[this is not json at all]")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	// Should be a parse error, not a ValidationError
	var ve *ValidationError
	if isValidationError(err, &ve) {
		t.Fatal("expected parse error, not ValidationError")
	}
}

func TestParseQuestions_EmptyArray(t *testing.T) {
	_, err := ParseQuestions("[]")

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
}

func TestParseQuestions_MissingCorrectAnswer(t *testing.T) {
	input := `[{"question":"Q?","options":["a","b","c","d"],"explanation":"because"}]`

	_, err := ParseQuestions(input)

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !containsError(ve.Errors, "missing correct_answer") {
		t.Errorf("expected error about missing correct_answer, got: %v", ve.Errors)
	}
}

func TestParseQuestions_InvalidCorrectAnswer(t *testing.T) {
	input := `[{"question":"Q?","options":["a","b","c","d"],"correct_answer":4,"explanation":"because"}]`

	_, err := ParseQuestions(input)

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !containsError(ve.Errors, "invalid correct_answer") {
		t.Errorf("expected error about invalid correct_answer, got: %v", ve.Errors)
	}
}

func TestParseQuestions_WrongOptionCount(t *testing.T) {
	input := `[{"question":"Q?","options":["a","b","c"],"correct_answer":0,"explanation":"because"}]`

	_, err := ParseQuestions(input)

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !containsError(ve.Errors, "expected 4 options") {
		t.Errorf("expected error about option count, got: %v", ve.Errors)
	}
}

func TestParseQuestions_EmptyExplanation(t *testing.T) {
	input := `[{"question":"Q?","options":["a","b","c","d"],"correct_answer":1,"explanation":""}]`

	_, err := ParseQuestions(input)
	if err == nil {
		t.Fatal("expected validation error for empty explanation")
	}
}

func TestParseQuestions_UnknownType(t *testing.T) {
	input := `[{"question":"Q?","options":["a","b","c","d"],"correct_answer":1,"explanation":"x","type":"essay"}]`

	_, err := ParseQuestions(input)

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !containsError(ve.Errors, "unknown type") {
		t.Errorf("expected error about unknown type, got: %v", ve.Errors)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := tokenize("mitochondria produce energy inside cells")
	b := tokenize("mitochondria produce energy inside cells")
	if got := jaccardSimilarity(a, b); got != 1 {
		t.Errorf("jaccardSimilarity(identical) = %f, want 1", got)
	}

	c := tokenize("rivers erode canyons slowly")
	if got := jaccardSimilarity(a, c); got != 0 {
		t.Errorf("jaccardSimilarity(disjoint) = %f, want 0", got)
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// isValidationError checks if err is a *ValidationError via type assertion
func isValidationError(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok && target != nil {
		*target = ve
	}
	return ok
}
