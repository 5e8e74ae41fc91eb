package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sguter90/sensormaestro/pkg/source"
)

var configKeys = []string{
	"SERVER_PORT", "SERVER_ALLOWED_ORIGINS", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"MQTT_BROKER", "MQTT_CLIENT_ID", "MQTT_USERNAME", "MQTT_PASSWORD", "MQTT_TOPIC_PREFIX", "MQTT_QOS",
	"JWT_SECRET", "JWT_TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT",
	"CATALOG_SOURCES", "CATALOG_REFRESH_INTERVAL", "CATALOG_OVERRIDES", "CATALOG_PERSIST", "CATALOG_KEEP_SNAPSHOTS",
}

// clearEnv unsets every config key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if cfg.Server.Addr() != ":8059" {
		t.Errorf("Expected addr ':8059', got '%s'", cfg.Server.Addr())
	}
	if cfg.MQTT.Enabled() {
		t.Error("Expected MQTT to be disabled without broker")
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected token TTL 24h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Catalog.RefreshInterval != 5*time.Minute {
		t.Errorf("Expected refresh interval 5m, got %v", cfg.Catalog.RefreshInterval)
	}
	if !cfg.Catalog.Persist {
		t.Error("Expected persistence to be enabled by default")
	}

	expected := []source.Spec{{Type: "fake", Config: map[string]string{}}}
	if diff := cmp.Diff(expected, cfg.Catalog.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MQTT_BROKER", "localhost:1883")
	t.Setenv("MQTT_QOS", "0")
	t.Setenv("CATALOG_SOURCES", "fake:vendor=Lab;static:path=/etc/sensors.yaml")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "30s")
	t.Setenv("CATALOG_PERSIST", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins); diff != "" {
		t.Errorf("Origins mismatch (-want +got):\n%s", diff)
	}
	if !cfg.MQTT.Enabled() || cfg.MQTT.QoS != 0 {
		t.Errorf("Unexpected MQTT config %+v", cfg.MQTT)
	}
	if len(cfg.Catalog.Sources) != 2 || cfg.Catalog.Sources[1].Config["path"] != "/etc/sensors.yaml" {
		t.Errorf("Unexpected sources %+v", cfg.Catalog.Sources)
	}
	if cfg.Catalog.RefreshInterval != 30*time.Second {
		t.Errorf("Expected 30s, got %v", cfg.Catalog.RefreshInterval)
	}
	if cfg.Catalog.Persist {
		t.Error("Expected persistence to be disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestFromEnv_SourceShorthand(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_SOURCES", "static:/etc/sensors.yaml; remote:http://host:8059")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	expected := []source.Spec{
		{Type: "static", Config: map[string]string{source.ValueKey: "/etc/sensors.yaml"}},
		{Type: "remote", Config: map[string]string{source.ValueKey: "http://host:8059"}},
	}
	if diff := cmp.Diff(expected, cfg.Catalog.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		errorMsg string
	}{
		{key: "CATALOG_REFRESH_INTERVAL", value: "often", errorMsg: "invalid CATALOG_REFRESH_INTERVAL"},
		{key: "CATALOG_REFRESH_INTERVAL", value: "-1m", errorMsg: "must not be negative"},
		{key: "CATALOG_SOURCES", value: "static:/etc/sensors.yaml,broken", errorMsg: "invalid CATALOG_SOURCES"},
		{key: "CATALOG_PERSIST", value: "maybe", errorMsg: "invalid CATALOG_PERSIST"},
		{key: "MQTT_QOS", value: "3", errorMsg: "invalid MQTT_QOS"},
		{key: "DB_PORT", value: "pg", errorMsg: "invalid DB_PORT"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tc.errorMsg) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.errorMsg, err.Error())
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "SERVER_PORT=7000\nJWT_SECRET=s3cret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if cfg.Server.Port != "7000" {
		t.Errorf("Expected port 7000, got %s", cfg.Server.Port)
	}
	if err := cfg.ValidateAuth(); err != nil {
		t.Errorf("Expected valid auth, got %v", err)
	}
}

func TestValidateAuth(t *testing.T) {
	for _, secret := range []string{"", "change_me_in_production"} {
		cfg := Config{Auth: AuthConfig{JWTSecret: secret}}
		if err := cfg.ValidateAuth(); err == nil {
			t.Errorf("Expected error for secret %q", secret)
		}
	}
}
