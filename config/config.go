package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	CORSOrigin        string
	ChangeFeedEnabled bool

	HTTP     HTTPConfig
	Database DatabaseConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL              string
	PingRetries      int
	PingInterval     time.Duration
	OperationTimeout time.Duration
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	return Config{
		Port:              orDefault("PORT", "8000"),
		LogLevel:          orDefault("LOG_LEVEL", "info"),
		CORSOrigin:        orDefault("CORS_ORIGIN", "*"),
		ChangeFeedEnabled: boolDefault("CHANGE_FEED_ENABLED", true),
		HTTP: HTTPConfig{
			ReadTimeout:     durationDefault("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    durationDefault("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     durationDefault("HTTP_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: durationDefault("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:              databaseURL(),
			PingRetries:      intDefault("DB_PING_RETRIES", 5),
			PingInterval:     durationDefault("DB_PING_INTERVAL", 2*time.Second),
			OperationTimeout: durationDefault("DB_OPERATION_TIMEOUT", 5*time.Second),
		},
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the
// individual DB_* variables.
func databaseURL() string {
	if url := env("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		orDefault("DB_USER", "postgres"),
		env("DB_PASSWORD"),
		orDefault("DB_HOST", "localhost"),
		orDefault("DB_PORT", "5432"),
		orDefault("DB_NAME", "noteful"),
		orDefault("DB_SSLMODE", "disable"),
	)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func orDefault(key, def string) string {
	if v := env(key); v != "" {
		return v
	}
	return def
}

func durationDefault(key string, def time.Duration) time.Duration {
	v := env(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration %q for %s, using %s", v, key, def)
		return def
	}
	return d
}

func intDefault(key string, def int) int {
	v := env(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int %q for %s, using %d", v, key, def)
		return def
	}
	return i
}

func boolDefault(key string, def bool) bool {
	v := env(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid bool %q for %s, using %t", v, key, def)
		return def
	}
	return b
}
