package config

import (
	"fmt"
	"os"
)

// Config holds every environment-driven setting for the service.
type Config struct {
	NatsURL       string
	DatabaseURL   string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	HTTPPort      string
}

// Load reads configuration from the environment. DATABASE_URL may be replaced
// by the discrete DB_* variables; everything else has a sane default except the
// OpenAI key, whose absence disables the classifier.
func Load() (*Config, error) {
	cfg := &Config{
		NatsURL:       getEnv("NATS_URL", "nats://localhost:4222"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		HTTPPort:      getEnv("HTTP_PORT", "3000"),
	}

	if cfg.DatabaseURL == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			return nil, fmt.Errorf("config: DATABASE_URL or DB_HOST must be set")
		}
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host,
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			getEnv("DB_PORT", "5432"),
		)
	}

	return cfg, nil
}

// ClassifierEnabled reports whether an OpenAI key was provided.
func (c *Config) ClassifierEnabled() bool {
	return c.OpenAIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
