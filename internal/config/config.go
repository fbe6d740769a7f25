package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	// Auto-load an optional .env file; real environment variables win.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all runtime settings for feyfocus.
// Populated from environment variables with sensible defaults.
type Config struct {
	// DBPath is the SQLite database file location
	DBPath string
	// TickInterval is the sampling cadence of the tracker
	TickInterval time.Duration
	// AppPath is the default application to monitor; the --app flag overrides it
	AppPath string
	// ExportPath is the default CSV export destination
	ExportPath string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DBPath:       getEnv("FEYFOCUS_DB", defaultDBPath()),
		TickInterval: time.Duration(getEnvInt("FEYFOCUS_INTERVAL_SEC", 1)) * time.Second,
		AppPath:      getEnv("FEYFOCUS_APP", ""),
		ExportPath:   getEnv("FEYFOCUS_EXPORT", "feyfocus.csv"),
	}
}

// defaultDBPath returns ~/.feyfocus/feyfocus.db, or a relative fallback when
// the home directory cannot be resolved.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "feyfocus.db"
	}
	return filepath.Join(homeDir, ".feyfocus", "feyfocus.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
