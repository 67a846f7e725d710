package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// Service limits for the HTTP and CLI front-ends.
	MaxLength      int
	MaxCount       int
	MinEntropyBits float64

	Argon2MemoryKiB  uint32
	Argon2Iterations uint32
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		MaxLength:      getInt("MAX_LENGTH", 128),
		MaxCount:       getInt("MAX_COUNT", 100),
		MinEntropyBits: getFloat("MIN_ENTROPY_BITS", 60),

		Argon2MemoryKiB:  uint32(getInt("ARGON2_MEMORY_KIB", 64*1024)),
		Argon2Iterations: uint32(getInt("ARGON2_ITERATIONS", 3)),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("ignoring invalid number setting", "key", key, "value", v)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", v)
		return fallback
	}
	return d
}
