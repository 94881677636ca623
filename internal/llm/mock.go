package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockClient returns canned responses for local development. Prompts that ask
// for a JSON array get quiz questions; anything else gets a coach reply.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	content := "[Mock] Great question! Let's break it down into smaller steps together."
	if strings.Contains(systemPrompt, "JSON array") {
		content = buildMockQuestionsJSON(userPrompt)
	}
	return &LLMResponse{
		Content:      content,
		PromptTokens: len(systemPrompt+userPrompt) / 4,
		OutputTokens: len(content) / 4,
	}, nil
}

func buildMockQuestionsJSON(content string) string {
	topic := "the material"
	if fields := strings.Fields(content); len(fields) > 0 {
		topic = strings.Trim(fields[0], ".,;:!?")
	}

	type mockQuestion struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
		Type          string   `json:"type"`
	}

	questions := make([]mockQuestion, 0, 5)
	for i := 0; i < 5; i++ {
		correct := i % 4
		options := make([]string, 4)
		for j := range options {
			label := "distractor"
			if j == correct {
				label = "correct"
			}
			options[j] = fmt.Sprintf("[Mock] %s option %d about %s", label, j+1, topic)
		}
		questions = append(questions, mockQuestion{
			Question:      fmt.Sprintf("[Mock] Question %d: which statement about %s is accurate?", i+1, topic),
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   fmt.Sprintf("[Mock] Option %d restates the source material about %s.", correct+1, topic),
			Type:          "multiple_choice",
		})
	}

	data, _ := json.Marshal(questions)
	return string(data)
}
