// Package config loads roster's settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultDBPath         = "./employee_management.db"
	DefaultCurrencySymbol = "₹"
)

// Config holds every runtime setting.
type Config struct {
	DBPath         string
	LogLevel       string
	LogFile        string
	LogFormat      string
	MetricsFile    string
	CurrencySymbol string
}

// Load reads envFile (if it exists) into the process environment and builds a
// Config from it. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	return &Config{
		DBPath:         getEnv("DB_PATH", DefaultDBPath),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		MetricsFile:    getEnv("METRICS_FILE", ""),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", DefaultCurrencySymbol),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
