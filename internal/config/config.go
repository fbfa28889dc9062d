package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	LogLevel          string
	GeminiAPIURL      string
	GeminiAPIKey      string
	GeminiTimeout     time.Duration
	KnowledgeBasePath string
	DepartmentsPath   string
	StaticDir         string
	DatabaseURL       string
	NatsURL           string
	NatsToken         string
	CORSOrigins       []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:              envInt("PORT", 5000),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		GeminiAPIURL:      envStr("GEMINI_API_URL", ""),
		GeminiAPIKey:      envStr("GEMINI_API_KEY", ""),
		GeminiTimeout:     envDuration("GEMINI_TIMEOUT", 60*time.Second),
		KnowledgeBasePath: envStr("KB_PATH", "data.json"),
		DepartmentsPath:   envStr("DEPARTMENTS_PATH", "departments.json"),
		StaticDir:         envStr("STATIC_DIR", "."),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		CORSOrigins:       envList("CORS_ORIGINS"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
