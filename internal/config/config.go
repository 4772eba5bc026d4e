package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	LLM     LLMConfig
	Auth    AuthConfig
	Metrics MetricsConfig
	App     AppConfig

	// Warnings lists problems found while loading that fell back to a
	// default. Load runs before the logger exists, so the caller logs them.
	Warnings []string
}

type ServerConfig struct {
	Port               string
	CorsAllowedOrigins []string
}

type StoreConfig struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	MaxConns    int
	MinConns    int
}

type LLMConfig struct {
	Provider     string
	GroqAPIKey   string
	GroqBaseURL  string
	GeminiAPIKey string
	Model        string
}

type AuthConfig struct {
	ClerkSecretKey     string
	ClerkWebhookSecret string
}

type MetricsConfig struct {
	User        string
	Pass        string
	PprofSecret string
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

func Load() (*Config, error) {
	var warnings []string

	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, "No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3333"),
			CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendRedis)),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25, &warnings),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5, &warnings),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderGroq)),
			GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("LLM_MODEL", ""),
		},
		Auth: AuthConfig{
			ClerkSecretKey:     getEnv("CLERK_SECRET_KEY", ""),
			ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
		},
		Metrics: MetricsConfig{
			User:        getEnv("METRICS_USER", ""),
			Pass:        getEnv("METRICS_PASS", ""),
			PprofSecret: getEnv("PPROF_SECRET", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "production"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	cfg.Warnings = warnings

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis store")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.LLM.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	return nil
}

// ModelName returns the configured model or the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "llama-3.1-8b-instant"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, warnings *[]string) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("Invalid integer for %s, using default: %d", key, defaultValue))
		return defaultValue
	}

	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
