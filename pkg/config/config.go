package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the scanner.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Scan
	TickersFile    string
	OutputDir      string
	LookbackMonths int
	MinHistory     int
	TopN           int // rows shown in the mail body

	// Provider
	Provider ProviderConfig

	// Mail
	SMTP SMTPConfig

	// Scheduler
	ScanSchedule string

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
	MetricsPort    string
}

// ProviderConfig holds market data provider configuration.
type ProviderConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
	RateBurst  int
}

// SMTPConfig holds SMTP mail configuration.
// User, Pass and To must all be set for mail to be sent.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	To   []string
}

// Configured reports whether enough settings are present to send mail.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != "" && len(s.To) > 0
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		TickersFile:    getEnv("TICKERS_FILE", "tickers.txt"),
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		LookbackMonths: getEnvAsInt("LOOKBACK_MONTHS", 6),
		MinHistory:     getEnvAsInt("MIN_HISTORY", 60),
		TopN:           getEnvAsInt("REPORT_TOP_N", 10),

		Provider: ProviderConfig{
			BaseURL:    getEnv("PROVIDER_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:    getEnvAsDuration("PROVIDER_TIMEOUT", "30s"),
			MaxRetries: getEnvAsInt("PROVIDER_MAX_RETRIES", 3),
			RatePerSec: getEnvAsFloat("PROVIDER_RATE_PER_SEC", 4.0),
			RateBurst:  getEnvAsInt("PROVIDER_RATE_BURST", 2),
		},

		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnvAsInt("SMTP_PORT", 587),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			To:   splitList(getEnv("SMTP_TO", "")),
		},

		// Weekdays at 08:30 local time, before the Taipei open.
		ScanSchedule: getEnv("SCAN_SCHEDULE", "0 30 8 * * MON-FRI"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.TickersFile == "" {
		return fmt.Errorf("TICKERS_FILE must not be empty")
	}

	if c.LookbackMonths < 1 {
		return fmt.Errorf("LOOKBACK_MONTHS must be at least 1, got %d", c.LookbackMonths)
	}

	if c.MinHistory < 2 {
		return fmt.Errorf("MIN_HISTORY must be at least 2, got %d", c.MinHistory)
	}

	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("SMTP_PORT out of range: %d", c.SMTP.Port)
	}

	return nil
}

// Lookback returns the provider lookback window as a duration.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.LookbackMonths) * 30 * 24 * time.Hour
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// splitList splits a comma separated list, trimming blanks.
func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
