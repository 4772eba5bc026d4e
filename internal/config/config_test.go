package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Server.Port)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.ModelName())
	assert.Equal(t, []string{"*"}, cfg.Server.CorsAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/trendmind")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 25, cfg.Store.MaxConns)
	assert.Contains(t, cfg.Warnings, "Invalid integer for DB_MAX_CONNS, using default: 25")
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsAllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"postgres without url", func(c *Config) { c.Store.Backend = BackendPostgres; c.Store.DatabaseURL = "" }, "DATABASE_URL"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "STORE_BACKEND"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "openai" }, "LLM_PROVIDER"},
		{"memory ok", func(c *Config) { c.Store.Backend = BackendMemory }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Port: "3333"},
				Store:  StoreConfig{Backend: BackendRedis, RedisURL: "redis://localhost:6379/0"},
				LLM:    LLMConfig{Provider: ProviderGroq},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
