package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/akozlov/weather-archive/internal/archive"
)

var validate = validator.New()

// AppConfig is the process configuration, read once at startup.
type AppConfig struct {
	// DatasetPath points at the archive export (.csv or .xlsx).
	DatasetPath string `validate:"required"`

	// Dataset shape.
	SkipRows     int    `validate:"gte=0"`
	TimeColumn   string `validate:"required"`
	CSVSeparator string `validate:"len=1"`

	// Selectable year range of the archive.
	YearMin int `validate:"gte=1"`
	YearMax int `validate:"gtefield=YearMin"`

	// ReloadInterval re-reads the dataset periodically; 0 disables it.
	ReloadInterval time.Duration `validate:"gte=0"`

	Port     string `validate:"required"`
	AppEnv   string
	LogLevel slog.Level
}

// LoadOptions translates the dataset settings for the loader.
func (c *AppConfig) LoadOptions() archive.LoadOptions {
	return archive.LoadOptions{
		SkipRows:     c.SkipRows,
		TimeColumn:   c.TimeColumn,
		CSVSeparator: []rune(c.CSVSeparator)[0],
	}
}

// Years returns the supported year range.
func (c *AppConfig) Years() archive.YearRange {
	return archive.YearRange{Min: c.YearMin, Max: c.YearMax}
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	defaults := archive.DefaultLoadOptions()

	cfg := &AppConfig{
		DatasetPath:  os.Getenv("DATASET_PATH"),
		SkipRows:     getenvInt("DATASET_SKIP_ROWS", defaults.SkipRows),
		TimeColumn:   getenvDefault("DATASET_TIME_COLUMN", defaults.TimeColumn),
		CSVSeparator: getenvDefault("DATASET_CSV_SEPARATOR", string(defaults.CSVSeparator)),
		YearMin:      getenvInt("YEAR_MIN", 2005),
		YearMax:      getenvInt("YEAR_MAX", 2024),
		Port:         getenvDefault("PORT", "8080"),
		AppEnv:       getenvDefault("APP_ENV", "dev"),
		LogLevel:     parseLogLevel(getenvDefault("LOG_LEVEL", "info")),
	}

	intervalStr := getenvDefault("RELOAD_INTERVAL", "0")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}
	cfg.ReloadInterval = interval

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
