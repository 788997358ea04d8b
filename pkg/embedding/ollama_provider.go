package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"examgen-be/pkg/gateway"
)

// OllamaProvider implements EmbeddingProvider for local Ollama models (e.g., nomic-embed-text)
type OllamaProvider struct {
	BaseURL string
	Model   string
	Caller  gateway.Caller
}

func NewOllamaProvider(caller gateway.Caller, baseURL string, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Caller:  caller,
	}
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"` // Ollama returns float64 usually
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType is ignored for Nomic/Ollama usually, but kept for interface compatibility

	resp, err := p.Caller.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    p.BaseURL + "/api/embeddings",
		JSON: ollamaEmbeddingRequest{
			Model:  p.Model,
			Prompt: text,
		},
	}, gateway.Options{Timeout: 60 * time.Second})
	if err != nil {
		return nil, err
	}

	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("ollama embedding error: %s", string(resp.Body))
	}

	var decoded ollamaEmbeddingResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, err
	}

	values := make([]float32, len(decoded.Embedding))
	for i, v := range decoded.Embedding {
		values[i] = float32(v)
	}

	// Cosine distance in pgvector requires normalized vectors (magnitude = 1)
	return &EmbeddingResponse{Values: normalizeVector(values)}, nil
}

// normalizeVector normalizes a vector to unit length (magnitude = 1)
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
