package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	// Rooms older than RoomTTL get swept; without expiry the store
	// leaks records forever.
	RoomTTL       time.Duration
	SweepInterval time.Duration
}

// Load reads .env when present, then the environment. Empty
// DatabaseURL/RedisAddr select the in-memory backends.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RoomTTL:       getduration("ROOM_TTL", 24*time.Hour),
		SweepInterval: getduration("SWEEP_INTERVAL", time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
