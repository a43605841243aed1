package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	APIBaseURL  string
	HTTPTimeout time.Duration

	RedisURL string

	SessionSecret string
	SessionTTL    time.Duration
	SubmitLockTTL time.Duration

	CLISessionFile string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_SECRET", "lemuel-console-dev-secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SUBMIT_LOCK_TTL", "10s")
	v.SetDefault("CLI_SESSION_FILE", defaultSessionFile())
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		APIBaseURL:     strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		RedisURL:       v.GetString("REDIS_URL"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		CLISessionFile: v.GetString("CLI_SESSION_FILE"),
	}

	// Parsing durations
	var err error
	if cfg.HTTPTimeout, err = parseDuration(v.GetString("HTTP_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = parseDuration(v.GetString("SESSION_TTL")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.SubmitLockTTL, err = parseDuration(v.GetString("SUBMIT_LOCK_TTL")); err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_LOCK_TTL: %w", err)
	}

	if cfg.IsProduction() && cfg.SessionSecret == "lemuel-console-dev-secret" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lemuel-session.json"
	}
	return filepath.Join(home, ".lemuel", "session.json")
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
