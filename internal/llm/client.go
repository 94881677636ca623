package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/neurolearn/backend/internal/config"
	"github.com/neurolearn/backend/internal/models"
)

// Client is the text-generation service every provider implementation satisfies.
type Client interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// New builds the client selected by cfg.LLMProvider. It returns
// models.ErrConfigurationMissing when no provider is configured; callers treat
// that as "use the fallback path", never as fatal.
func New(cfg *config.Config) (Client, string, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, "", fmt.Errorf("%w: ANTHROPIC_API_KEY is empty", models.ErrConfigurationMissing)
		}
		log.Println("Text generation using Anthropic API:", cfg.AnthropicModel)
		return NewAPIClient(cfg.AnthropicKey, cfg.AnthropicModel), cfg.AnthropicModel, nil
	case "groq":
		if cfg.GroqKey == "" {
			return nil, "", fmt.Errorf("%w: GROQ_API_KEY is empty", models.ErrConfigurationMissing)
		}
		log.Println("Text generation using Groq API:", cfg.GroqModel)
		return NewOpenAIClient(cfg.GroqKey, cfg.GroqBaseURL, cfg.GroqModel), cfg.GroqModel, nil
	case "cli":
		log.Println("Text generation using Claude CLI (local plan)")
		return NewCLIClient(cfg.CLIPath), "claude-cli", nil
	case "mock":
		log.Println("Text generation using mock data")
		return NewMockClient(), "mock", nil
	case "", "none":
		return nil, "", models.ErrConfigurationMissing
	default:
		return nil, "", fmt.Errorf("%w: unknown LLM_PROVIDER %q", models.ErrConfigurationMissing, cfg.LLMProvider)
	}
}
