package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	RedisURL            string
	RedisConnectTimeout time.Duration
	DatabaseURL         string // optional; finalized sets are not persisted without it

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	OpenAITemperature float64
	LLMTimeout        time.Duration
	LLMMaxChunkChars  int

	CacheTTL      time.Duration
	FinalCacheTTL time.Duration // 0 keeps finalized sets until deleted
	SchemaMode    validator.Mode

	MaxUploadBytes     int64
	CORSAllowedOrigins []string

	Events EventConfig
}

// LoadConfig reads .env when present and builds the configuration from the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	mode, err := validator.ParseMode(getEnv("SCHEMA_MODE", string(validator.ModePermissive)))
	errs = append(errs, err)

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisConnectTimeout: getDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second, &errs),
		DatabaseURL:         getEnv("DATABASE_URL", ""),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAITemperature: getFloat("OPENAI_TEMPERATURE", 0, &errs),
		LLMTimeout:        getDuration("LLM_TIMEOUT", 120*time.Second, &errs),
		LLMMaxChunkChars:  getInt("LLM_MAX_CHUNK_CHARS", 0, &errs),

		CacheTTL:      getDuration("CACHE_TTL", time.Hour, &errs),
		FinalCacheTTL: getDuration("FINAL_CACHE_TTL", 0, &errs),
		SchemaMode:    mode,

		MaxUploadBytes:     int64(getInt("MAX_UPLOAD_BYTES", 32<<20, &errs)),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		Events: EventConfig{
			Enabled:       getBool("EVENTS_ENABLED", false, &errs),
			Publisher:     getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers:  getEnv("KAFKA_BROKERS", "localhost:9092"),
			QuestionTopic: getEnv("QUESTION_EVENTS_TOPIC", "question-events"),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings needed to run the extraction pipeline.
func (c *Config) Validate() error {
	var errs []error
	if c.OpenAIAPIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is required"))
	}
	if c.OpenAITemperature < 0 || c.OpenAITemperature > 2 {
		errs = append(errs, fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2, got %g", c.OpenAITemperature))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.LLMMaxChunkChars < 0 {
		errs = append(errs, errors.New("LLM_MAX_CHUNK_CHARS must not be negative"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration accepts Go durations ("90s", "1h") or whole seconds ("3600").
func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, value))
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, value))
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, value))
		return defaultValue
	}
	return f
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, value))
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
