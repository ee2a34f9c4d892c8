package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider defaults. These are the only defaults; the llm client sends
// whatever Config holds. LLM_TEMPERATURE=0 is honoured as a zero temperature.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultLLMModel      = "gpt-4o"
	DefaultTemperature   = 0.5
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// OpenAI
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	LLMModel          string
	LLMTemperature    float64
	LLMTimeout        time.Duration
	LLMCircuitBreaker bool

	// HTTP
	BodyLimit      int
	AllowedOrigins []string
}

func Load() (*Config, error) {
	env := getEnv("ENV", "development")
	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", defaultLevel),

		// OpenAI
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		LLMModel:          getEnv("LLM_MODEL", DefaultLLMModel),
		LLMTemperature:    getEnvFloat("LLM_TEMPERATURE", DefaultTemperature),
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 60)) * time.Second,
		LLMCircuitBreaker: getEnvBool("LLM_CIRCUIT_BREAKER", false),

		// HTTP
		BodyLimit:      getEnvInt("BODY_LIMIT_BYTES", 1024*1024),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
