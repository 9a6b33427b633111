package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type Config struct {
	Port             string
	LogLevel         string
	AllowedDomain    string
	ModelBackend     string
	GeminiAPIKey     string
	GeminiAPIKeyName string
	Model            string
	ProjectID        string
	Region           string
	ChatTimeout      time.Duration
	MCPServerURL     string
	AuditEnabled     bool
	AuditTTL         time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

func New() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOGLEVEL", "info"),
		AllowedDomain:    os.Getenv("ALLOWED_DOMAIN"),
		ModelBackend:     getBackend(os.Getenv("MODEL_BACKEND")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiAPIKeyName: os.Getenv("GEMINI_API_KEY_SECRET"),
		Model:            getEnv("MODEL", "gemini-2.5-flash"),
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           getEnv("REGION", "us-central1"),
		ChatTimeout:      getDurationEnv("CHAT_TIMEOUT", 60*time.Second),
		MCPServerURL:     os.Getenv("MCP_SERVER_URL"),
		AuditEnabled:     getBoolEnv("AUDIT_ENABLED", false),
		AuditTTL:         getDurationEnv("AUDIT_TTL", 720*time.Hour),
		RateLimitRPS:     getFloatEnv("RATE_LIMIT_RPS", 0),
		RateLimitBurst:   getIntEnv("RATE_LIMIT_BURST", 5),
	}
}

func getBackend(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case BackendVertex:
		return BackendVertex
	default: // "gemini"
		return BackendGemini
	}
}

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

// getDurationEnv accepts a Go duration ("90s", "2m") or a bare number of seconds.
func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultVal
	}
	return v
}

func getIntEnv(key string, defaultVal int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultVal
	}
	return v
}

func getFloatEnv(key string, defaultVal float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
