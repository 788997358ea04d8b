package factory

import (
	"fmt"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/llm"
	"examgen-be/pkg/llm/groq"
	"examgen-be/pkg/llm/ollama"
)

func NewLLMProvider(caller gateway.Caller, providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		return groq.NewGroqProvider(caller, baseURL, apiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(caller, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
