package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultOutDir   = "."
	DefaultHolder   = "User"
	DefaultExchange = "Binance"
	DefaultLogLevel = "info"
)

// Config holds the settings of a conversion run.
// Values come from the environment (or a .env file) and may be overridden by flags.
type Config struct {
	OutDir   string
	Holder   string
	Exchange string
	LogLevel string
}

// Load reads configuration from environment variables or a .env file.
// A missing .env file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file, relying on OS environment variables", "error", err)
	}

	return &Config{
		OutDir:   getEnv("PREPROC_OUT_DIR", DefaultOutDir),
		Holder:   getEnv("PREPROC_HOLDER", DefaultHolder),
		Exchange: getEnv("PREPROC_EXCHANGE", DefaultExchange),
		LogLevel: getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
