package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds user preferences
type Config struct {
	Storage       StorageConfig `yaml:"storage" json:"storage"`
	Courses       CourseConfig  `yaml:"courses" json:"courses"`
	UpcomingDays  int           `yaml:"upcoming_days" json:"upcoming_days"`   // Look-ahead window for `upcoming`
	ConfirmDelete bool          `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// StorageConfig selects and sizes the persistent store
type StorageConfig struct {
	Driver     string `yaml:"driver" json:"driver"`           // sqlite or bolt
	Path       string `yaml:"path" json:"path"`               // Database file
	QuotaBytes int64  `yaml:"quota_bytes" json:"quota_bytes"` // 0 disables the quota
}

// CourseConfig holds the defaults applied to new courses
type CourseConfig struct {
	Color    string `yaml:"color" json:"color"`
	Credits  int    `yaml:"credits" json:"credits"`
	Semester string `yaml:"semester" json:"semester"`
}

// Dir returns ~/.classtrack
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".classtrack"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath, dbPath := "", ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "classtrack.log")
		dbPath = filepath.Join(dir, "classtrack.db")
	}

	return &Config{
		Storage: StorageConfig{
			Driver:     getEnv("CLASSTRACK_STORAGE_DRIVER", DriverSQLite),
			Path:       getEnv("CLASSTRACK_STORAGE_PATH", dbPath),
			QuotaBytes: 5 * 1024 * 1024,
		},
		Courses: CourseConfig{
			Color:    "#0062B8",
			Credits:  3,
			Semester: "Fall 2025",
		},
		UpcomingDays:  7,
		ConfirmDelete: true,
		LogLevel:      getEnv("CLASSTRACK_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("CLASSTRACK_LOG_FILE", logPath),
		LogConsole:    getEnv("CLASSTRACK_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.classtrack/config.yaml
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom loads config.yaml and .env from dir. A missing file yields defaults.
func LoadFrom(dir string) (*Config, error) {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverBolt:
	default:
		return fmt.Errorf("unknown storage driver %q (want %s or %s)", c.Storage.Driver, DriverSQLite, DriverBolt)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage quota cannot be negative")
	}
	if c.UpcomingDays < 0 {
		return fmt.Errorf("upcoming_days cannot be negative")
	}
	return nil
}

// Save saves config to ~/.classtrack/config.yaml
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return c.SaveTo(dir)
}

// SaveTo writes config.yaml into dir
func (c *Config) SaveTo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
