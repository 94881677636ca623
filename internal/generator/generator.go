package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/neurolearn/backend/internal/llm"
	"github.com/neurolearn/backend/internal/models"
)

const generationTimeout = 60 * time.Second

// Generator turns source content into quiz questions. The llm client may be
// nil, in which case every call uses the fill-in-the-blank fallback.
type Generator struct {
	llm          llm.Client
	model        string
	maxQuestions int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(client llm.Client, model string, maxQuestions int) *Generator {
	if maxQuestions < 1 {
		maxQuestions = 20
	}
	return &Generator{
		llm:          client,
		model:        model,
		maxQuestions: maxQuestions,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) ModelName() string {
	if g.llm == nil {
		return "fallback"
	}
	return g.model
}

func (g *Generator) MaxQuestions() int {
	return g.maxQuestions
}

// Generate returns up to count questions. Only input validation errors are
// returned; service failures are logged and absorbed by the fallback.
func (g *Generator) Generate(ctx context.Context, content string, difficulty models.Difficulty, count int) ([]models.Question, models.QuestionSource, error) {
	if strings.TrimSpace(content) == "" {
		return nil, "", fmt.Errorf("%w: content is empty", models.ErrInvalidInput)
	}
	if count < 1 || count > g.maxQuestions {
		return nil, "", fmt.Errorf("%w: count %d outside [1, %d]", models.ErrInvalidInput, count, g.maxQuestions)
	}
	if !models.ValidDifficulties[difficulty] {
		return nil, "", fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidInput, difficulty)
	}

	questions, err := g.generateWithService(ctx, content, difficulty, count)
	if err == nil {
		return questions, models.SourceAI, nil
	}

	if errors.Is(err, models.ErrConfigurationMissing) {
		log.Printf("[generator] no text generation service configured, using fallback questions")
	} else {
		log.Printf("[generator] WARNING: using fallback questions: %v", err)
	}

	return g.fallbackQuestions(content, count), models.SourceFallback, nil
}

func (g *Generator) generateWithService(ctx context.Context, content string, difficulty models.Difficulty, count int) ([]models.Question, error) {
	if g.llm == nil {
		return nil, models.ErrConfigurationMissing
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := g.llm.Generate(ctx, QuizSystemPrompt(difficulty, count), truncateContent(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrServiceUnavailable, err)
	}

	questions, err := ParseQuestions(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", models.ErrServiceUnavailable, err)
	}

	if len(questions) > count {
		questions = questions[:count]
	}

	log.Printf("[generator] generated %d questions with %s (%d prompt / %d output tokens)",
		len(questions), g.ModelName(), resp.PromptTokens, resp.OutputTokens)

	return questions, nil
}
