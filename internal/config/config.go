package config

import (
	"os"
	"strings"
)

const (
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultPort           = "9091"
	DefaultTranscribePath = "/api/transcribe"
)

// Config holds the process settings read from the environment
type Config struct {
	OpenAIAPIKey   string
	AuthSecret     string
	OpenAIBaseURL  string
	Port           string
	Environment    string
	TranscribePath string
}

// Load reads configuration from environment variables, applying defaults where allowed.
// OPENAI_API_KEY and AUTH_SECRET are left empty when unset; requests are rejected per call instead.
func Load() Config {
	return Config{
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		OpenAIBaseURL:  strings.TrimRight(getEnvOrDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL), "/"),
		Port:           getEnvOrDefault("PORT", DefaultPort),
		Environment:    getEnvOrDefault("APP_ENV", "production"),
		TranscribePath: getEnvOrDefault("TRANSCRIBE_PATH", DefaultTranscribePath),
	}
}

// IsDevelopment reports whether the development logger should be used
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
