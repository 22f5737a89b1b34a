package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface. Immutable
// after Load.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Notify    NotifyConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ReportingConfig holds the business timezone and the monthly snapshot
// schedule.
type ReportingConfig struct {
	Timezone     string
	CronSchedule string
}

// SheetsConfig configures the optional Google Sheets export of monthly
// reports. Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// NotifyConfig configures the optional webhook notification for monthly
// reports. Empty URL disables it.
type NotifyConfig struct {
	WebhookURL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTL, err := parseDurationDays(getenvWithDefault("JWT_TTL_DAYS", "360"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "4000"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "salon"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Reporting: ReportingConfig{
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 6 1 * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "Reports!A:F"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("REPORT_WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGO_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL_DAYS must be positive")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must not be empty")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid IANA timezone: %w", c.Reporting.Timezone, err)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must not be empty")
	}

	// The sheets export is optional but must be configured fully or not at all.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_REPORT_ID must be set together")
	}

	return nil
}

// Location resolves the configured business timezone. Validate guarantees
// this cannot fail after a successful Load.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Reporting.Timezone)
}

// SheetsEnabled reports whether the monthly report sheet export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func parseDurationDays(value string) (time.Duration, error) {
	days, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("JWT_TTL_DAYS must be an integer: %w", err)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
