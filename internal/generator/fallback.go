package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neurolearn/backend/internal/models"
)

const (
	blankMarker       = "_____"
	minSentenceLength = 20
	minSentenceWords  = 5
	minKeyWordLength  = 3
)

var stopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true,
	"this": true, "that": true, "from": true,
}

var distractorVocabulary = []string{"information", "concept", "system", "process", "method", "result"}

// fallbackQuestions builds fill-in-the-blank questions from the content
// without the text-generation service. It returns at most count questions.
func (g *Generator) fallbackQuestions(content string, count int) []models.Question {
	questions := make([]models.Question, 0, count)
	for _, sentence := range candidateSentences(content) {
		if len(questions) >= count {
			break
		}
		if q, ok := g.fillInBlank(sentence); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// candidateSentences splits on periods and drops trivial fragments.
func candidateSentences(content string) []string {
	var sentences []string
	for _, s := range strings.Split(content, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func (g *Generator) fillInBlank(sentence string) (models.Question, bool) {
	words := strings.Fields(sentence)
	if len(words) <= minSentenceWords {
		return models.Question{}, false
	}

	var keyIdx []int
	for i, w := range words {
		core := cleanWord(w)
		if utf8.RuneCountInString(core) > minKeyWordLength && !stopWords[strings.ToLower(core)] {
			keyIdx = append(keyIdx, i)
		}
	}
	if len(keyIdx) == 0 {
		return models.Question{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	idx := keyIdx[g.rng.Intn(len(keyIdx))]
	target := cleanWord(words[idx])

	blanked := make([]string, len(words))
	copy(blanked, words)
	blanked[idx] = strings.Replace(words[idx], target, blankMarker, 1)

	pool := make([]string, 0, len(distractorVocabulary))
	for _, d := range distractorVocabulary {
		if !strings.EqualFold(d, target) {
			pool = append(pool, d)
		}
	}
	options := []string{target}
	for _, p := range g.rng.Perm(len(pool))[:models.OptionCount-1] {
		options = append(options, pool[p])
	}
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, o := range options {
		if o == target {
			correct = i
			break
		}
	}

	return models.Question{
		Question:      "Fill in the blank: " + strings.Join(blanked, " "),
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   fmt.Sprintf("The correct answer is '%s' based on the context.", target),
		Type:          models.QuestionFillBlank,
	}, true
}

// cleanWord strips surrounding punctuation from a token.
func cleanWord(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
