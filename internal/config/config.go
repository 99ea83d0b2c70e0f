package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config represents the full application configuration surface.
type Config struct {
	Storage   StorageConfig
	CSV       CSVConfig
	Reporting ReportingConfig
	Logging   LoggingConfig
}

// StorageConfig holds the location of the CSV data files.
type StorageConfig struct {
	DataDir       string
	SalesFile     string
	InventoryFile string
}

// SalesPath returns the path of the sales CSV file.
func (s StorageConfig) SalesPath() string {
	return filepath.Join(s.DataDir, s.SalesFile)
}

// InventoryPath returns the path of the inventory CSV file.
func (s StorageConfig) InventoryPath() string {
	return filepath.Join(s.DataDir, s.InventoryFile)
}

// ColumnNames maps the canonical sale columns onto the header names used in
// the CSV file. Existing exports often title the columns differently, so the
// names are configurable rather than fixed.
type ColumnNames struct {
	Date      string
	Product   string
	Quantity  string
	UnitPrice string
	CashType  string
	Card      string
}

// CSVConfig holds the CSV schema options.
type CSVConfig struct {
	DateLayout string
	Columns    ColumnNames
}

// ReportingConfig holds summary generation settings.
type ReportingConfig struct {
	CronSchedule  string
	DefaultPeriod string
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string
	File       string // empty: stderr only
	MaxSizeMB  int
	MaxBackups int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. Every option has a default, so an empty
// environment yields a working configuration.
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

	maxSize, err := getenvInt("LOG_MAX_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}
	maxBackups, err := getenvInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Storage: StorageConfig{
			DataDir:       getenvWithDefault("COFFEE_DATA_DIR", "data"),
			SalesFile:     getenvWithDefault("COFFEE_SALES_FILE", "sales.csv"),
			InventoryFile: getenvWithDefault("COFFEE_INVENTORY_FILE", "inventory.csv"),
		},
		CSV: CSVConfig{
			DateLayout: getenvWithDefault("COFFEE_DATE_LAYOUT", "2006-01-02"),
			Columns: ColumnNames{
				Date:      getenvWithDefault("CSV_COLUMN_DATE", "date"),
				Product:   getenvWithDefault("CSV_COLUMN_PRODUCT", "product"),
				Quantity:  getenvWithDefault("CSV_COLUMN_QUANTITY", "quantity"),
				UnitPrice: getenvWithDefault("CSV_COLUMN_UNIT_PRICE", "unit_price"),
				CashType:  getenvWithDefault("CSV_COLUMN_CASH_TYPE", "cash_type"),
				Card:      getenvWithDefault("CSV_COLUMN_CARD", "card"),
			},
		},
		Reporting: ReportingConfig{
			CronSchedule:  getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			DefaultPeriod: getenvWithDefault("REPORT_DEFAULT_PERIOD", "day"),
		},
		Logging: LoggingConfig{
			Level:      getenvWithDefault("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  maxSize,
			MaxBackups: maxBackups,
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

	if c.Storage.DataDir == "" {
		return errors.New("COFFEE_DATA_DIR must not be empty")
	}
	if c.Storage.SalesFile == "" {
		return errors.New("COFFEE_SALES_FILE must not be empty")
	}
	if c.Storage.InventoryFile == "" {
		return errors.New("COFFEE_INVENTORY_FILE must not be empty")
	}

	if c.CSV.DateLayout == "" {
		return errors.New("COFFEE_DATE_LAYOUT must not be empty")
	}

	switch c.Reporting.DefaultPeriod {
	case "day", "week", "month":
	default:
		return fmt.Errorf("REPORT_DEFAULT_PERIOD must be day, week or month, got %q", c.Reporting.DefaultPeriod)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return parsed, nil
}
