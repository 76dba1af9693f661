// Package config loads environment configuration for the featured pipeline.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a local .env file when one exists. Missing
// files are not an error; the process environment always wins.
func LoadEnv() {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		_ = godotenv.Load(file)
	}
}

// GetEnv gets an environment variable with a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default value.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Credentials holds the platform API credentials the adapters need.
type Credentials struct {
	YouTubeAPIKey      string
	TwitchClientID     string
	TwitchClientSecret string
	TikTokClientKey    string
}

// LoadCredentials reads platform credentials from the environment. Empty
// values are allowed: an adapter without credentials simply fails its
// fetches, which the orchestrator recovers as empty results.
func LoadCredentials() Credentials {
	return Credentials{
		YouTubeAPIKey:      GetEnv("FEATURED_YOUTUBE_API_KEY", ""),
		TwitchClientID:     GetEnv("FEATURED_TWITCH_CLIENT_ID", ""),
		TwitchClientSecret: GetEnv("FEATURED_TWITCH_CLIENT_SECRET", ""),
		TikTokClientKey:    GetEnv("FEATURED_TIKTOK_CLIENT_KEY", ""),
	}
}
