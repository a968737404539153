package config

import (
	"os"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	Environment string
	CORSOrigins []string

	// CRM backend
	BackendURL         string
	BackendTimeout     time.Duration
	BackendConnected   bool
	BackendLoadOnStart bool
	SyncTimeout        time.Duration

	// UI
	NotificationDuration time.Duration
	SenderName           string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		Environment: getEnv("APP_ENV", "development"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		BackendURL:         strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://127.0.0.1:3000"), "/"),
		BackendTimeout:     getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		BackendConnected:   getEnvBool("BACKEND_CONNECTED", false),
		BackendLoadOnStart: getEnvBool("BACKEND_LOAD_ON_START", false),
		SyncTimeout:        getEnvDuration("SYNC_TIMEOUT", 30*time.Second),

		NotificationDuration: getEnvDuration("NOTIFICATION_DURATION", 5*time.Second),
		SenderName:           getEnv("SENDER_NAME", "Your Name"),
	}
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
