// ABOUTME: Runtime configuration resolved from .env file and environment
// ABOUTME: Flag > environment > default precedence is handled by the cmd layer

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the documented fallback for direct backend access.
const DefaultAPIURL = "http://localhost:8000"

// Config aggregates the runtime settings the client needs.
type Config struct {
	APIURL      string
	DataTimeout time.Duration
	ChatTimeout time.Duration
	Logger      LoggerConfig
}

// LoggerConfig controls the file logger.
type LoggerConfig struct {
	Level string
	Path  string
}

// Load reads an optional .env file, then the environment, and fills in
// defaults for anything unset.
func Load() Config {
	// Missing .env is not an error; environment still applies.
	_ = godotenv.Load()

	cfg := Config{
		APIURL:      getEnv("TODOCHAT_API_URL", DefaultAPIURL),
		DataTimeout: getDuration("TODOCHAT_DATA_TIMEOUT", 5*time.Second),
		ChatTimeout: getDuration("TODOCHAT_CHAT_TIMEOUT", 30*time.Second),
		Logger: LoggerConfig{
			Level: getEnv("TODOCHAT_LOG_LEVEL", "info"),
			Path:  getEnv("TODOCHAT_LOG_FILE", defaultLogPath()),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// DataDir returns the per-user application data directory, creating it
// if needed. Follows XDG with a home-directory fallback.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "todochat")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return appDir, nil
}

func defaultLogPath() string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todochat.log")
}
