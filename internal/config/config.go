package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	SnapshotBaseURL  string
	DataAPIBaseURL   string
	RedisURL         string
	CacheTTLSnapshot time.Duration
	RequestTimeout   time.Duration
	CollectDelay     time.Duration
	AuthSecret       string
	RateLimitPerMin  int
	DBPath           string
	OutputDir        string
	ThresholdsPath   string
	TelegramToken    string
	TelegramChatID   string
	SiteURL          string
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		SnapshotBaseURL:  getEnv("SNAPSHOT_BASE_URL", "http://localhost:8001/daily"),
		DataAPIBaseURL:   getEnv("DATA_API_BASE_URL", "http://localhost:8002"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTLSnapshot: getEnvDuration("CACHE_TTL_SNAPSHOT", 300*time.Second),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		CollectDelay:     getEnvDuration("COLLECT_DELAY", 2*time.Second),
		AuthSecret:       getEnv("AUTH_SECRET", "blitzboat2026"),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 120),
		DBPath:           getEnv("DB_PATH", "data/results.db"),
		OutputDir:        getEnv("OUTPUT_DIR", "data/daily"),
		ThresholdsPath:   getEnv("THRESHOLDS_PATH", "thresholds.yaml"),
		TelegramToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		SiteURL:          getEnv("SITE_URL", "https://blitzboat.vercel.app"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}
