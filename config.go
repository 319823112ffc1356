package main

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Environment keys read at startup. A .env file is loaded first when present.
const (
	envDataFile        = "DATA_FILE"
	envPort            = "PORT"
	envPersistSessions = "PERSIST_SESSIONS"
	envSessionDir      = "SESSION_DIR"
	envSessionTimeout  = "SESSION_TIMEOUT"
	envCookieMaxAge    = "COOKIE_MAX_AGE"
	envStaticCacheAge  = "STATIC_CACHE_AGE"
	envRateLimitRPS    = "RATE_LIMIT_RPS"
	envRateLimitBurst  = "RATE_LIMIT_BURST"
)

// newAppFromEnv reads configuration from the environment.
func newAppFromEnv() *App {
	return &App{
		DataFile:        getEnv(envDataFile, "data/baseball_data.csv"),
		GameSessions:    make(map[string]*GameState),
		LimiterMap:      make(map[string]*rate.Limiter),
		IsProduction:    os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		PersistSessions: envValue(envPersistSessions, false, strconv.ParseBool),
		SessionDir:      getEnv(envSessionDir, "data/sessions"),
		SessionTimeout:  envValue(envSessionTimeout, 2*time.Hour, time.ParseDuration),
		CookieMaxAge:    envValue(envCookieMaxAge, 2*time.Hour, time.ParseDuration),
		StaticCacheAge:  envValue(envStaticCacheAge, 5*time.Minute, time.ParseDuration),
		RateLimitRPS:    envValue(envRateLimitRPS, 5, strconv.Atoi),
		RateLimitBurst:  envValue(envRateLimitBurst, 10, strconv.Atoi),
		StartTime:       time.Now(),
	}
}

// envValue parses key with parse, falling back when it is unset or malformed.
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		logWarn("Invalid value for %s (%q): %v, using default %v", key, raw, err, fallback)
		return fallback
	}
	return v
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
