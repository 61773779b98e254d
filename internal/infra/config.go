package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv       string
	Endpoint     string
	APIKey       string
	OutputPath   string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	PollMaxWait  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The API key is validated here, before any client is
// constructed, so a missing credential never reaches the network.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Endpoint:     getEnv("AZURE_ENDPOINT", "https://jai-omi.openai.azure.com/openai/v1"),
		APIKey:       os.Getenv("AZURE_API_KEY"),
		OutputPath:   getEnv("VIDEO_OUTPUT_PATH", "sora_output.mp4"),
		HTTPTimeout:  time.Second * time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 120)),
		PollInterval: time.Second * time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 10)),
		PollMaxWait:  time.Second * time.Duration(getEnvInt("POLL_MAX_WAIT_SECONDS", 600)),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AZURE_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
