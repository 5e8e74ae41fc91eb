package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		level       zapcore.Level
		expectError bool
	}{
		{name: "Defaults", cfg: Config{}, level: zapcore.InfoLevel},
		{name: "Debug console", cfg: Config{Level: "debug", Format: "console"}, level: zapcore.DebugLevel},
		{name: "Upper case", cfg: Config{Level: "WARN", Format: "JSON"}, level: zapcore.WarnLevel},
		{name: "Invalid level", cfg: Config{Level: "loud"}, expectError: true},
		{name: "Invalid format", cfg: Config{Format: "xml"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.cfg)
			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}

			if !logger.Desugar().Core().Enabled(tc.level) {
				t.Errorf("Expected level %s to be enabled", tc.level)
			}
			if tc.level > zapcore.DebugLevel && logger.Desugar().Core().Enabled(tc.level-1) {
				t.Errorf("Expected level %s to be disabled", tc.level-1)
			}
		})
	}
}
