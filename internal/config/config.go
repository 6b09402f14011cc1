package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Auth   AuthConfig
	Enrich EnrichConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
}

type LLMConfig struct {
	Provider string `envconfig:"LLM_PROVIDER" default:"gemini"`

	// Gemini settings
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	FastModel     string `envconfig:"GEMINI_FAST_MODEL" default:"gemini-3-fast-preview"`
	ThinkingModel string `envconfig:"GEMINI_THINKING_MODEL" default:"gemini-3-pro-preview"`

	// OpenAI-compatible settings
	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIEndpoint string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
	OpenAIModel    string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

type AuthConfig struct {
	// UserinfoEndpoint is the OAuth provider's userinfo URL used to resolve
	// a bearer token into an email and plan tier.
	UserinfoEndpoint string        `envconfig:"AUTH_USERINFO_ENDPOINT" required:"true"`
	Timeout          time.Duration `envconfig:"AUTH_TIMEOUT" default:"10s"`
	SessionCacheSize int           `envconfig:"AUTH_SESSION_CACHE_SIZE" default:"512"`
	SessionTTL       time.Duration `envconfig:"AUTH_SESSION_TTL" default:"5m"`
}

type EnrichConfig struct {
	// Web search (empty key disables the path)
	SearchAPIKey  string        `envconfig:"SEARCH_API_KEY"`
	SearchBaseURL string        `envconfig:"SEARCH_API_URL" default:"https://api.firecrawl.dev/v1"`
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"15s"`

	// Similarity retrieval backend (empty URL disables the path)
	RAGBaseURL string        `envconfig:"RAG_BACKEND_URL"`
	RAGTimeout time.Duration `envconfig:"RAG_TIMEOUT" default:"10s"`

	// Live documentation lookup (empty URL disables the path)
	DocsBaseURL string        `envconfig:"DOCS_API_URL"`
	DocsAPIKey  string        `envconfig:"DOCS_API_KEY"`
	DocsTimeout time.Duration `envconfig:"DOCS_TIMEOUT" default:"10s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
