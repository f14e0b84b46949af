package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// R2 holds Cloudflare R2 credentials for reading uploaded resumes.
type R2 struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether every R2 setting is present.
func (r R2) Enabled() bool {
	return r.AccountID != "" && r.Bucket != "" && r.AccessKey != "" && r.SecretKey != ""
}

// Config holds all worker configuration loaded from environment variables.
type Config struct {
	DBURL       string
	RabbitMQURL string

	GoogleAPIKey string
	GeminiModels []string
	AgentModel   string

	R2 R2

	WorkerCount     int
	HTTPAddr        string
	RefreshInterval time.Duration
	LogLevel        slog.Level
	LogJSON         bool
}

var ErrMissing = errors.New("missing required environment variable")

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:        os.Getenv("DB_URL"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModels: getEnvList("GEMINI_MODELS"),
		AgentModel:   getEnv("AGENT_MODEL", "gemini-2.5-pro"),
		R2: R2{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},
		WorkerCount:     getEnvInt("WORKER_COUNT", 3),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 7*24*time.Hour),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LogJSON:         getEnv("LOG_FORMAT", "json") == "json",
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("%w: DB_URL", ErrMissing)
	}
	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("%w: RABBITMQ_URL", ErrMissing)
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return cfg, nil
}

// Logger builds the process logger from the configured level and format.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return fallback
	}
	return lvl
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
