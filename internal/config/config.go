// Package config loads runtime configuration from the environment.
// A local .env file is honored when present, matching how the service is
// run in development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	// HTTP server
	Port string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Firestore
	ProjectID       string
	CredentialsFile string

	// Language model
	GeminiModel string
	LLMTimeout  time.Duration

	// Prediction service
	PredictionURL     string
	PredictionTimeout time.Duration

	// Outbound retry policy: one retry after RetryBackoff on transport
	// failure, applied to LLM and prediction calls.
	RetryBackoff time.Duration
}

// Load reads configuration from the environment, applying defaults for
// everything except the secrets that have no sane default.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "5000"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 60*24*time.Hour),

		ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
		CredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:  getEnvDuration("LLM_TIMEOUT", 30*time.Second),

		PredictionURL:     getEnv("ML_URL", "http://localhost:8000"),
		PredictionTimeout: getEnvDuration("PREDICTION_TIMEOUT", 15*time.Second),

		RetryBackoff: getEnvDuration("RETRY_BACKOFF", 500*time.Millisecond),
	}
}

// Validate returns an error describing every misconfiguration it finds.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.ProjectID == "" {
		return fmt.Errorf("config: GOOGLE_CLOUD_PROJECT is required")
	}
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("config: invalid port %d: must be between 1 and 65535", port)
	}
	if c.LLMTimeout <= 0 || c.PredictionTimeout <= 0 {
		return fmt.Errorf("config: timeouts must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
