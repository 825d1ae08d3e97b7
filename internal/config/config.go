package config

import (
	"os"
	"strconv"
)

// Config holds service configuration loaded from the environment
type Config struct {
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	HTTPPort     string
	WindowDays   int // Rolling analysis window for trust scoring
	SweepWorkers int // Bounded parallelism of the batch sweep
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "hydropoints"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		WindowDays:   getEnvInt("TRUST_WINDOW_DAYS", 30),
		SweepWorkers: getEnvInt("SWEEP_WORKERS", 8),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
