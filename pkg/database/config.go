package database

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the PostgreSQL connection settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
}

// ConfigFromEnv reads the connection settings from DB_* environment variables
func ConfigFromEnv() (Config, error) {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	return Config{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         port,
		User:         getEnv("DB_USER", "sensor_user"),
		Password:     getEnv("DB_PASSWORD", "sensor_pass"),
		Name:         getEnv("DB_NAME", "sensor_db"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	}, nil
}

// DSN builds the lib/pq connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
