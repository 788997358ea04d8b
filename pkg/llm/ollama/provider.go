package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/llm"
)

// OllamaProvider targets a local Ollama instance for offline development.
// It shares the gateway with the hosted providers so timeouts and retries
// behave the same regardless of backend.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Caller    gateway.Caller
	Timeout   time.Duration
}

var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(caller gateway.Caller, baseURL, modelName string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Caller:    caller,
		Timeout:   120 * time.Second,
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.3, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	ollamaMessages := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		ollamaMessages[i] = ollamaMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := ollamaChatRequest{
		Model:    model,
		Messages: ollamaMessages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		payload.Options.NumPredict = options.MaxTokens
	}

	resp, err := o.Caller.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    o.BaseURL + "/api/chat",
		JSON:   payload,
	}, gateway.Options{Timeout: o.Timeout})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}

	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("ollama error: status %d, body: %s", resp.Status, string(resp.Body))
	}

	var decoded ollamaChatResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return decoded.Message.Content, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return o.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
