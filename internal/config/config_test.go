package config

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "REDIS_URL", "OPENAI_MODEL", "OPENAI_TEMPERATURE", "LLM_TIMEOUT",
		"LLM_MAX_CHUNK_CHARS", "CACHE_TTL", "FINAL_CACHE_TTL", "SCHEMA_MODE",
		"CORS_ALLOWED_ORIGINS", "EVENTS_ENABLED", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Zero(t, cfg.OpenAITemperature)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.Zero(t, cfg.LLMMaxChunkChars)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Zero(t, cfg.FinalCacheTTL)
	assert.Equal(t, validator.ModePermissive, cfg.SchemaMode)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CACHE_TTL", "3600")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SCHEMA_MODE", "strict")
	t.Setenv("OPENAI_TEMPERATURE", "0.3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, validator.ModeStrict, cfg.SchemaMode)
	assert.InDelta(t, 0.3, cfg.OpenAITemperature, 1e-9)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CACHE_TTL", "an hour")
	t.Setenv("SCHEMA_MODE", "lenient")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
	assert.Contains(t, err.Error(), "lenient")
}

func TestValidate(t *testing.T) {
	cfg := &Config{CacheTTL: time.Hour, MaxUploadBytes: 1 << 20}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.Validate())

	cfg.OpenAITemperature = 3
	assert.Error(t, cfg.Validate())
}
