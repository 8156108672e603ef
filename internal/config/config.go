// internal/config/config.go
//
// Environment configuration. `.env` is loaded by main via godotenv before
// Load runs, so values there behave like real environment variables.
//
// Environment variables:
//   HOST=127.0.0.1            PORT=5175
//   LOG_LEVEL=info            LOG_PRETTY=false
//   STORE=sqlite|memory       DB_PATH=./data/taillight.db
//   SEED_CATALOG=false        CATALOG_SEED_FILE=/path/to/vehicles.json
//   ACTIVITY_CAPACITY=10      MAX_IMAGE_BYTES=8388608
//   CLIENT_ORIGIN=http://localhost:5173

package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds process settings.
type Config struct {
	Host string
	Port string

	LogLevel  string
	LogPretty bool

	Store  string
	DBPath string

	SeedCatalog bool
	SeedFile    string

	ActivityCapacity int
	MaxImageBytes    int64
	ClientOrigin     string
}

// Addr is the listen address.
func (c *Config) Addr() string { return c.Host + ":" + c.Port }

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "5175"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: envBool("LOG_PRETTY", false),

		Store:  strings.ToLower(getEnv("STORE", "sqlite")),
		DBPath: getEnv("DB_PATH", "./data/taillight.db"),

		SeedCatalog: envBool("SEED_CATALOG", false),
		SeedFile:    os.Getenv("CATALOG_SEED_FILE"),

		ActivityCapacity: envInt("ACTIVITY_CAPACITY", 10),
		MaxImageBytes:    int64(envInt("MAX_IMAGE_BYTES", 8<<20)),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
