// Package config
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath         string        `validate:"required"`
	SampleInterval time.Duration `validate:"gte=100000000"`

	// HTTPAddr enables the local query/live endpoint when non-empty.
	HTTPAddr       string
	AllowedOrigins []string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
	LogFile   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	// Logs
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "text")
	logFile := getEnv("LOG_FILE", "")

	// Store
	dbPath := getEnv("VITALS_DB_PATH", "system_metrics.db")

	// Collection cadence
	interval := time.Second
	if raw := os.Getenv("VITALS_SAMPLE_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		}
	}

	// Local HTTP/WS endpoint, disabled unless set
	addr := getEnv("VITALS_HTTP_ADDR", "")

	var origins []string
	if rawOrigins := os.Getenv("ALLOWED_ORIGINS"); rawOrigins != "" {
		for o := range strings.SplitSeq(rawOrigins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	cfg := &Config{
		DBPath:         dbPath,
		SampleInterval: interval,
		HTTPAddr:       addr,
		AllowedOrigins: origins,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		LogFile:        logFile,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
