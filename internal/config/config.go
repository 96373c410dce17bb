package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server settings
	APIAddr string
	DevMode bool

	// Redis settings
	RedisAddr string

	// ClickHouse settings
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	// LLM provider credentials; an empty credential removes that provider
	// from the fallback chain.
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	OpenRouterAPIKey string

	// Data provider settings
	LunarCrushAPIKey  string
	LunarCrushBaseURL string
	GoPlusBaseURL     string
	BinanceFuturesURL string
	FinnhubAPIKey     string

	// Quota settings
	DailyChatLimit int
	QuotaTimezone  string
	AdminToken     string

	// HTTP client settings
	HTTPTimeout time.Duration
}

func Load() *Config {
	return &Config{
		// Server
		APIAddr: getEnv("API_ADDR", ":8090"),
		DevMode: getBoolEnv("DEV_MODE", false),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		// ClickHouse
		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "markets"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),

		// Providers
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),

		// Data providers
		LunarCrushAPIKey:  getEnv("LUNARCRUSH_API_KEY", ""),
		LunarCrushBaseURL: getEnv("LUNARCRUSH_BASE_URL", "https://lunarcrush.com/api4"),
		GoPlusBaseURL:     getEnv("GOPLUS_BASE_URL", "https://api.gopluslabs.io/api/v1"),
		BinanceFuturesURL: getEnv("BINANCE_FUTURES_URL", "https://fapi.binance.com"),
		FinnhubAPIKey:     getEnv("FINNHUB_API_KEY", ""),

		// Quota
		DailyChatLimit: getIntEnv("DAILY_CHAT_LIMIT", 10),
		QuotaTimezone:  getEnv("QUOTA_TIMEZONE", "America/Chicago"),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),

		// HTTP
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR is required")
	}
	if c.DailyChatLimit <= 0 {
		return fmt.Errorf("DAILY_CHAT_LIMIT must be positive")
	}
	if _, err := time.LoadLocation(c.QuotaTimezone); err != nil {
		return fmt.Errorf("invalid QUOTA_TIMEZONE %q: %w", c.QuotaTimezone, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
