package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
	Alerts    AlertConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and parameterizes the slot-store backend. The
// memory driver keeps everything in process, for fully offline use and
// tests.
type StorageConfig struct {
	Driver      string
	MongoURI    string
	MongoDBName string
}

// SheetsConfig configures the optional Google Sheets backup mirror. The
// mirror is disabled when both fields are empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SchedulerConfig holds the cron expressions for the background jobs.
type SchedulerConfig struct {
	BackupCron string
	AlertCron  string
}

// AlertConfig configures the optional stock-alert webhook. Alerts are
// disabled when the URL is empty.
type AlertConfig struct {
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

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Driver:      getenvWithDefault("STORAGE_DRIVER", DriverMongoDB),
			MongoURI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "medflow"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_BACKUP_ID"),
		},
		Scheduler: SchedulerConfig{
			BackupCron: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 20 * * *"),
			AlertCron:  getenvWithDefault("ALERT_CRON_SCHEDULE", "0 8 * * *"),
		},
		Alerts: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
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

	switch c.Storage.Driver {
	case DriverMongoDB:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Storage.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case DriverMemory:
		// No further settings; data lives for the lifetime of the process.
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_BACKUP_ID")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_BACKUP_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
		}
	}

	if c.Scheduler.BackupCron == "" {
		return errors.New("BACKUP_CRON_SCHEDULE must be provided")
	}
	if c.Scheduler.AlertCron == "" {
		return errors.New("ALERT_CRON_SCHEDULE must be provided")
	}

	return nil
}

// Enabled reports whether the sheets mirror should be wired.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" || s.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
