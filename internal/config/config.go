package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr string
	Env      string
	LogLevel string

	// Storefront REST API
	APIBaseURL string
	APITimeout time.Duration

	// Media host (signed direct uploads)
	MediaHostURL      string
	UploadMaxFiles    int
	UploadConcurrency int

	// Session store
	SessionBackend string // file, redis, memory
	SessionFile    string
	SessionKey     string
	SessionSecret  string // hex encoded 32 bytes, seals the file-backed token
	RedisAddr      string
	RedisPass      string
	RedisDB        int

	// Screens
	PageSize int
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Env:      getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: strings.TrimRight(firstEnv([]string{"API_BASE_URL", "API_BASE", "API_URL"}, "http://localhost:5000/api/v1"), "/"),
		APITimeout: getEnvDuration("API_TIMEOUT", 15*time.Second),

		MediaHostURL:      strings.TrimRight(getEnv("MEDIA_HOST_URL", "https://api.cloudinary.com"), "/"),
		UploadMaxFiles:    getEnvInt("UPLOAD_MAX_FILES", 8),
		UploadConcurrency: getEnvInt("UPLOAD_CONCURRENCY", 3),

		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", "file")),
		SessionFile:    getEnv("SESSION_FILE", "./.glam-admin/session.json"),
		SessionKey:     getEnv("SESSION_KEY", "accessToken"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      getEnv("REDIS_PASS", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),

		PageSize: getEnvInt("PAGE_SIZE", 24),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys []string, fallback string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
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
