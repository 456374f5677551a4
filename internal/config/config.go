package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Admin session lifetime in Redis.
	SessionTTL time.Duration

	// Calendar used for the dashboard's day bucketing.
	StatsTimeZone string

	AI AIConfig

	Kafka KafkaConfig

	AllowedOrigin string
}

// AIConfig configures the external conversation model.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Per-request deadline for chat completions.
	Timeout time.Duration
}

// KafkaConfig configures the quiz-result ingest consumer.
type KafkaConfig struct {
	Brokers          []string
	QuizResultsTopic string
	ConsumerGroup    string
}

// LoadConfig reads configuration from the environment, honoring a local .env
// file when present.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SessionTTL:    getDurationEnv("SESSION_TTL", 24*time.Hour),
		StatsTimeZone: getEnv("STATS_TIMEZONE", "America/Sao_Paulo"),
		AI: AIConfig{
			APIKey:  os.Getenv("AI_API_KEY"),
			BaseURL: os.Getenv("AI_BASE_URL"),
			Model:   getEnv("AI_MODEL", "gpt-4o-mini"),
			Timeout: getDurationEnv("CHAT_TIMEOUT", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:          splitEnv("KAFKA_BROKERS"),
			QuizResultsTopic: getEnv("QUIZ_RESULTS_TOPIC", "quiz.results"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "admin-service"),
		},
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare numbers are treated as seconds.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
