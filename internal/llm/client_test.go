package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/neurolearn/backend/internal/config"
	"github.com/neurolearn/backend/internal/models"
)

func TestNew_NoProvider(t *testing.T) {
	for _, provider := range []string{"", "none"} {
		client, _, err := New(&config.Config{LLMProvider: provider})
		if client != nil {
			t.Errorf("New(%q) returned a client, want nil", provider)
		}
		if !errors.Is(err, models.ErrConfigurationMissing) {
			t.Errorf("New(%q) error = %v, want ErrConfigurationMissing", provider, err)
		}
	}
}

func TestNew_MissingKey(t *testing.T) {
	for _, provider := range []string{"anthropic", "groq"} {
		_, _, err := New(&config.Config{LLMProvider: provider})
		if !errors.Is(err, models.ErrConfigurationMissing) {
			t.Errorf("New(%q) without key error = %v, want ErrConfigurationMissing", provider, err)
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, _, err := New(&config.Config{LLMProvider: "carrier-pigeon"})
	if !errors.Is(err, models.ErrConfigurationMissing) {
		t.Errorf("unknown provider error = %v, want ErrConfigurationMissing", err)
	}
}

func TestNew_Mock(t *testing.T) {
	client, model, err := New(&config.Config{LLMProvider: "mock"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if model != "mock" {
		t.Errorf("model = %q, want %q", model, "mock")
	}
	if _, ok := client.(*MockClient); !ok {
		t.Errorf("client type = %T, want *MockClient", client)
	}
}

func TestMockClient_QuestionPrompt(t *testing.T) {
	resp, err := NewMockClient().Generate(context.Background(), "Return only a valid JSON array of questions.", "Photosynthesis converts light.")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var questions []map[string]any
	if err := json.Unmarshal([]byte(resp.Content), &questions); err != nil {
		t.Fatalf("mock content is not a JSON array: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("expected 5 mock questions, got %d", len(questions))
	}
}

func TestMockClient_CoachPrompt(t *testing.T) {
	resp, err := NewMockClient().Generate(context.Background(), "You are an empathetic learning coach.", "help")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(resp.Content, "[Mock]") {
		t.Errorf("unexpected coach mock content %q", resp.Content)
	}
}
