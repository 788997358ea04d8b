package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/llm"
)

// GroqProvider talks to the Groq OpenAI-compatible chat completions API.
// All calls go through the resilient gateway so transport failures and
// 5xx responses are retried under the shared policy.
type GroqProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Caller    gateway.Caller
	Timeout   time.Duration
}

var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(caller gateway.Caller, baseURL, apiKey, modelName string) *GroqProvider {
	if baseURL == "" {
		baseURL = "https://api.groq.com"
	}
	return &GroqProvider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Caller:    caller,
		Timeout:   120 * time.Second,
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// --- Interface Implementation ---

func (g *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.3, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Stream:      false,
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Caller.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    g.BaseURL + "/openai/v1/chat/completions",
		Header: header,
		JSON:   payload,
	}, gateway.Options{Timeout: g.Timeout})
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("groq error: status %d, body: %s", resp.Status, string(resp.Body))
	}

	var decoded chatResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("groq response contained no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

func (g *GroqProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
