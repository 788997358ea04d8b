package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Upstream UpstreamConfig
	Ai       AIConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ArtifactTTL        time.Duration
}

type DatabaseConfig struct {
	Connection string
}

// GatewayConfig tunes the shared outbound call policy.
type GatewayConfig struct {
	MaxRetries  int
	BackoffBase time.Duration
	Timeout     time.Duration
}

// UpstreamConfig points each pipeline stage at its collaborator. The render,
// problem and compile surfaces default to this server's own base URL since
// they are hosted here; retrieval may live elsewhere.
type UpstreamConfig struct {
	RenderBaseURL    string
	RetrievalBaseURL string
	ProblemBaseURL   string
	CompileBaseURL   string
	// ProxyBaseURL is the generic pass-through target. Empty disables the
	// proxy route.
	ProxyBaseURL string
}

type AIConfig struct {
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string // e.g. "llama-3.3-70b-versatile"
	LLMBaseURL        string
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	OllamaModel       string
}

type APIKeys struct {
	Groq              string
	EmbedProblemTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ArtifactTTL:        getEnvAsDuration("ARTIFACT_TTL", 5*time.Minute),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Gateway: GatewayConfig{
			MaxRetries:  getEnvAsInt("GATEWAY_MAX_RETRIES", 2),
			BackoffBase: getEnvAsDuration("GATEWAY_BACKOFF_BASE", 500*time.Millisecond),
			Timeout:     getEnvAsDuration("GATEWAY_TIMEOUT", 45*time.Second),
		},
		Upstream: UpstreamConfig{
			RenderBaseURL:    getEnv("RENDER_BASE_URL", baseURL),
			RetrievalBaseURL: getEnv("RETRIEVAL_BASE_URL", baseURL),
			ProblemBaseURL:   getEnv("PROBLEM_BASE_URL", baseURL),
			CompileBaseURL:   getEnv("COMPILE_BASE_URL", baseURL),
			ProxyBaseURL:     getEnv("PROXY_BASE_URL", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Keys: APIKeys{
			Groq:              getEnv("GROQ_API_KEY", ""),
			EmbedProblemTopic: getEnv("EMBED_PROBLEM_TOPIC_NAME", "EMBED_PROBLEM"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
