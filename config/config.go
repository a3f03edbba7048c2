package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	Policy     string // active policy preset, empty means the catalog default
	PolicyFile string // optional TOML overlay for cities and policies

	RedisAddr     string // empty selects the in-memory stores
	RedisPassword string
	RedisDB       int

	SessionTTL  time.Duration
	MaxSessions int // in-memory store only
	CacheSize   int
	CacheTTL    time.Duration

	RateLimitCapacity int
	RateLimitWindow   time.Duration

	OpenAIAPIKey string
	OpenAIURL    string
	OpenAIModel  string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine, real env vars may be set instead
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		Policy:        getEnv("POLICY", ""),
		PolicyFile:    getEnv("POLICY_FILE", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIURL:     getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.MaxSessions, err = getInt("MAX_SESSIONS", 10000); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getInt("CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.RateLimitCapacity, err = getInt("RATE_LIMIT_CAPACITY", 30); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT value: %d", cfg.Port)
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("CACHE_SIZE must be positive, got %d", cfg.CacheSize)
	}
	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}
	if cfg.RateLimitCapacity <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", cfg.RateLimitCapacity)
	}

	return cfg, nil
}

// UseRedis reports whether Redis backs the scenario store and result cache.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return i, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
