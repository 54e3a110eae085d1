package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Rental    RentalConfig    `yaml:"rental"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains SQLite settings
type DatabaseConfig struct {
	Path          string `yaml:"path"`
	BusyTimeoutMs int    `yaml:"busy_timeout_ms"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RentalConfig contains rental rules that are off by default
type RentalConfig struct {
	PreventDoubleBooking bool `yaml:"prevent_double_booking"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReportOpenRentals    string `yaml:"report_open_rentals"`
	OpenRentalAlertHours int    `yaml:"open_rental_alert_hours"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Path: "tesla_rent.db"},
	}
	cfg.overrideWithEnv()
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_PATH"); val != "" {
		c.Database.Path = val
	}
	if val := os.Getenv("DB_BUSY_TIMEOUT_MS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.BusyTimeoutMs)
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("PREVENT_DOUBLE_BOOKING"); val != "" {
		c.Rental.PreventDoubleBooking = strings.EqualFold(val, "true") || val == "1"
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.BusyTimeoutMs == 0 {
		c.Database.BusyTimeoutMs = 5000
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 1 // SQLite allows a single writer
	}
	if c.Scheduler.ReportOpenRentals == "" {
		c.Scheduler.ReportOpenRentals = "0 0 * * * *" // hourly
	}
	if c.Scheduler.OpenRentalAlertHours == 0 {
		c.Scheduler.OpenRentalAlertHours = 24
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Database.BusyTimeoutMs < 0 {
		return fmt.Errorf("invalid busy timeout: %d", c.Database.BusyTimeoutMs)
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("invalid max open conns: %d", c.Database.MaxOpenConns)
	}

	if c.Scheduler.OpenRentalAlertHours < 0 {
		return fmt.Errorf("invalid open rental alert hours: %d", c.Scheduler.OpenRentalAlertHours)
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
