package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	StoreBackend    string // memory|postgres|redis
	DatabaseURL     string
	RedisAddr       string
	RedisPrefix     string
	SeedFile        string // JSON-объект key -> value для memory
	Location        *time.Location
	HTTPAddr        string
	LogLevel        string
	Env             string // dev|prod
	SentryDSN       string
	RefreshInterval time.Duration
	TrendWindow     int
	RankingSize     int
	SchoolName      string // для имён файлов выгрузки
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	cfg := &Config{
		StoreBackend:    strings.ToLower(getenv("STORE_BACKEND", "memory")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:     getenv("REDIS_PREFIX", "school:"),
		SeedFile:        os.Getenv("SEED_FILE"),
		Location:        loc,
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Env:             getenv("ENV", "dev"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		RefreshInterval: durationEnv("REFRESH_INTERVAL", time.Minute),
		TrendWindow:     intEnv("TREND_WINDOW", 7),
		RankingSize:     intEnv("RANKING_SIZE", 8),
		SchoolName:      strings.TrimSpace(os.Getenv("SCHOOL_NAME")),
	}

	switch cfg.StoreBackend {
	case "memory", "redis":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL: required for postgres backend")
		}
	default:
		return nil, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func intEnv(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
