// Package config reads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const defaultPageSize = 5000

// Config holds the runtime settings.
type Config struct {
	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string
	// PageSize is the max cell count per page for whole-sheet reads.
	PageSize int
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env file")
	}

	cfg := Config{
		LogLevel: "info",
		PageSize: defaultPageSize,
	}
	if v := os.Getenv("EXCELTOOLS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("EXCELTOOLS_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			log.WithField("EXCELTOOLS_PAGE_SIZE", v).Warn("invalid page size, using default")
		} else {
			cfg.PageSize = size
		}
	}
	return cfg
}
