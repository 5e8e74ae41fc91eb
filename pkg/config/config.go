// Package config collects the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sguter90/sensormaestro/pkg/database"
	"github.com/sguter90/sensormaestro/pkg/logging"
	"github.com/sguter90/sensormaestro/pkg/notify"
	"github.com/sguter90/sensormaestro/pkg/source"
)

// insecureSecret is the placeholder shipped in example env files
const insecureSecret = "change_me_in_production"

// Config is the complete runtime configuration
type Config struct {
	Server   ServerConfig
	Database database.Config
	MQTT     notify.Config
	Auth     AuthConfig
	Logging  logging.Config
	Catalog  CatalogConfig
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// AuthConfig holds the JWT settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CatalogConfig holds the sensor catalog settings
type CatalogConfig struct {
	Sources         []source.Spec
	RefreshInterval time.Duration
	OverridesPath   string
	Persist         bool
	KeepSnapshots   int
}

// Load reads the given .env files (".env" when none are given) into the
// environment and builds the configuration. Missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from environment variables
func FromEnv() (Config, error) {
	var cfg Config
	var err error

	cfg.Server = ServerConfig{
		Port:           getEnv("SERVER_PORT", "8059"),
		AllowedOrigins: splitList(getEnv("SERVER_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}
	if cfg.Server.ReadTimeout, err = getDuration("SERVER_READ_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Server.WriteTimeout, err = getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.Database, err = database.ConfigFromEnv(); err != nil {
		return Config{}, err
	}

	qos, err := getInt("MQTT_QOS", 1)
	if err != nil {
		return Config{}, err
	}
	if qos < 0 || qos > 2 {
		return Config{}, fmt.Errorf("invalid MQTT_QOS: %d (expected 0, 1 or 2)", qos)
	}
	cfg.MQTT = notify.Config{
		Broker:      getEnv("MQTT_BROKER", ""),
		ClientID:    getEnv("MQTT_CLIENT_ID", ""),
		Username:    getEnv("MQTT_USERNAME", ""),
		Password:    getEnv("MQTT_PASSWORD", ""),
		TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "sensormaestro"),
		QoS:         byte(qos),
	}

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.Auth.TokenTTL, err = getDuration("JWT_TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	cfg.Logging = logging.Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.Catalog.Sources, err = source.ParseSpecs(getEnv("CATALOG_SOURCES", "fake")); err != nil {
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCES: %w", err)
	}
	if cfg.Catalog.RefreshInterval, err = getDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	cfg.Catalog.OverridesPath = getEnv("CATALOG_OVERRIDES", "")
	if cfg.Catalog.Persist, err = getBool("CATALOG_PERSIST", true); err != nil {
		return Config{}, err
	}
	if cfg.Catalog.KeepSnapshots, err = getInt("CATALOG_KEEP_SNAPSHOTS", 50); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateAuth checks that a usable JWT secret is configured
func (c Config) ValidateAuth() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == insecureSecret {
		return errors.New("JWT_SECRET environment variable is not set or has an invalid value")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
