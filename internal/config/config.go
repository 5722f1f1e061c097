package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the backend's environment-driven settings. All provider
// keys are optional; a missing key just leaves that provider abstaining.
type Config struct {
	Port            int
	DatabasePath    string
	OpenAIKey       string
	OpenAIModel     string
	DeepSeekKey     string
	DeepSeekModel   string
	GrokKey         string
	GrokModel       string
	ProviderTimeout time.Duration
}

// LoadDotEnv loads a .env file into the environment if one exists.
// Existing environment variables take precedence.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	port, err := envInt("PORT", 8000)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: PORT must be in 1-65535, got %d", port)
	}

	timeoutSecs, err := envInt("PROVIDER_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	if timeoutSecs < 1 {
		return nil, fmt.Errorf("config: PROVIDER_TIMEOUT_SECONDS must be >= 1, got %d", timeoutSecs)
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "./auto_debater.db"
	}

	return &Config{
		Port:            port,
		DatabasePath:    databasePath,
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envDefault("OPENAI_MODEL", "gpt-4-turbo-preview"),
		DeepSeekKey:     os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekModel:   envDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		GrokKey:         os.Getenv("GROK_API_KEY"),
		GrokModel:       envDefault("GROK_MODEL", "grok-beta"),
		ProviderTimeout: time.Duration(timeoutSecs) * time.Second,
	}, nil
}

func envDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, s, err)
	}
	return v, nil
}
