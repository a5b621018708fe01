package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	AppEnv  string
	TZName  string
	Origins []string

	Upstream  UpstreamConfig
	Gemini    GeminiConfig
	Telegram  TelegramConfig
	RateLimit RateLimitConfig

	DatabaseURL string
	RedisURL    string

	// AllowSampleFallback substitutes the fixed sample orders when the upstream CSV is empty.
	AllowSampleFallback bool
	RefreshInterval     time.Duration
	OrderCacheTTL       time.Duration
}

type UpstreamConfig struct {
	OrdersURL  string
	APIKey     string
	MaxRetries int
	Timeout    time.Duration
}

type GeminiConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	cfg := &Config{
		Port:    getEnv("PORT", "8081"),
		AppEnv:  getEnv("APP_ENV", "development"),
		TZName:  getEnv("TZ_NAME", ""),
		Origins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		Upstream: UpstreamConfig{
			OrdersURL:  getEnv("UPSTREAM_ORDERS_URL", ""),
			APIKey:     getEnv("UPSTREAM_API_KEY", ""),
			MaxRetries: getEnvInt("UPSTREAM_MAX_RETRIES", 3),
			Timeout:    getEnvDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey:   getEnv("GEMINI_API_KEY", ""),
			Model:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Endpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta/models"),
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_TOKEN", ""),
			ChatID: chatID,
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvInt("RATE_LIMIT_MAX", 100),
			Window:      getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		AllowSampleFallback: getEnvBool("ALLOW_SAMPLE_FALLBACK", false),
		RefreshInterval:     getEnvDuration("REFRESH_INTERVAL", 20*time.Minute),
		OrderCacheTTL:       getEnvDuration("ORDER_CACHE_TTL", 10*time.Minute),
	}

	if cfg.Upstream.OrdersURL == "" {
		log.Println("⚠️  UPSTREAM_ORDERS_URL not set, order fetches will fail")
	}

	return cfg, nil
}

// Location returns the zone used to derive calendar dates. Falls back to time.Local.
func (c *Config) Location() *time.Location {
	if c.TZName == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TZName)
	if err != nil {
		log.Printf("⚠️  invalid TZ_NAME=%q err=%v -> using local zone", c.TZName, err)
		return time.Local
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
