package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	RoundDurationMinutes int
	DefaultTimezone      string
	JoinCodeLength       int
	SweepIntervalMinutes int
	SweepGraceMinutes    int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "speedfriending"),
			SQLitePath: getEnv("SQLITE_PATH", "speedfriending.db"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			RoundDurationMinutes: getEnvInt("ROUND_DURATION_MINUTES", 8),
			DefaultTimezone:      getEnv("DEFAULT_TIMEZONE", "Europe/Minsk"),
			JoinCodeLength:       getEnvInt("JOIN_CODE_LENGTH", 6),
			SweepIntervalMinutes: getEnvInt("SWEEP_INTERVAL_MINUTES", 5),
			SweepGraceMinutes:    getEnvInt("SWEEP_GRACE_MINUTES", 10),
		},
	}

	if config.Database.Driver != "sqlite" && config.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.Database.Driver)
	}

	if config.App.RoundDurationMinutes <= 0 {
		return nil, fmt.Errorf("ROUND_DURATION_MINUTES must be positive")
	}

	if config.App.JoinCodeLength < 4 {
		return nil, fmt.Errorf("JOIN_CODE_LENGTH must be at least 4")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// RoundDuration returns the configured round length
func (c *AppConfig) RoundDuration() time.Duration {
	return time.Duration(c.RoundDurationMinutes) * time.Minute
}

// SweepInterval returns how often the pairing sweeper runs
func (c *AppConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// SweepGrace returns how long after a round window closes before
// unmet pairings are marked missed
func (c *AppConfig) SweepGrace() time.Duration {
	return time.Duration(c.SweepGraceMinutes) * time.Minute
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable with a fallback default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
